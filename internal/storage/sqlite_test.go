package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	_, err = store.SaveSession(SessionRecord{GameID: "loop", Variant: "corrected", StartBalance: 10000, Balance: 9000, Rounds: 10})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	sessions, err := store.TopSessions("loop", 10)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestSaveAndTopSessions(t *testing.T) {
	store := openTestStore(t)

	for _, bal := range []int{9000, 12500, 400} {
		_, err := store.SaveSession(SessionRecord{
			GameID: "loop", Variant: "corrected", StartBalance: 10000, Balance: bal, Rounds: 7,
		})
		require.NoError(t, err)
	}
	_, err := store.SaveSession(SessionRecord{GameID: "loop_rigged", Variant: "rigged", StartBalance: 10000, Balance: 50000})
	require.NoError(t, err)

	top, err := store.TopSessions("loop", 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int{12500, 9000, 400}, []int{top[0].Balance, top[1].Balance, top[2].Balance})
	assert.Equal(t, 2500, top[0].Net())
	assert.Equal(t, "local", top[0].Player)
	assert.False(t, top[0].CreatedAt.IsZero())

	_, err = uuid.Parse(top[0].ID)
	assert.NoError(t, err, "generated IDs are UUIDs")

	limited, err := store.TopSessions("loop", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSaveSessionKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSession(SessionRecord{ID: "fixed-id", GameID: "loop", Variant: "corrected", Player: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	_, err = store.SaveSession(SessionRecord{ID: "fixed-id", GameID: "loop", Variant: "corrected"})
	assert.Error(t, err, "duplicate IDs are rejected")
}

func TestRecentSessions(t *testing.T) {
	store := openTestStore(t)

	for _, game := range []string{"loop", "loop_classic", "loop_rigged"} {
		_, err := store.SaveSession(SessionRecord{GameID: game, Variant: game, StartBalance: 100, Balance: 100})
		require.NoError(t, err)
	}

	recent, err := store.RecentSessions(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "loop_rigged", recent[0].GameID)
	assert.Equal(t, "loop_classic", recent[1].GameID)
}

func TestClearSessions(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveSession(SessionRecord{GameID: "loop", Variant: "corrected"})
	require.NoError(t, err)
	_, err = store.SaveSession(SessionRecord{GameID: "loop_classic", Variant: "classic"})
	require.NoError(t, err)

	require.NoError(t, store.ClearSessions("loop"))

	loop, err := store.TopSessions("loop", 10)
	require.NoError(t, err)
	assert.Empty(t, loop)

	classic, err := store.TopSessions("loop_classic", 10)
	require.NoError(t, err)
	assert.Len(t, classic, 1)
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("loop")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Sessions)
	assert.True(t, empty.LastPlayed.IsZero())

	records := []SessionRecord{
		{GameID: "loop", Variant: "corrected", StartBalance: 10000, Balance: 11000, Rounds: 10},
		{GameID: "loop", Variant: "corrected", StartBalance: 10000, Balance: 7000, Rounds: 30},
		{GameID: "loop_rigged", Variant: "rigged", StartBalance: 10000, Balance: 50, Rounds: 120},
	}
	for _, r := range records {
		_, err := store.SaveSession(r)
		require.NoError(t, err)
	}

	stats, err := store.GetGameStats("loop")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sessions)
	assert.Equal(t, 40, stats.Rounds)
	assert.Equal(t, 1000, stats.BestNet)
	assert.Equal(t, -3000, stats.WorstNet)
	assert.InDelta(t, -1000.0, stats.AvgNet, 1e-9)

	all, err := store.GetAllGamesStats()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, -9950, all["loop_rigged"].BestNet)
}

func TestSimulationRuns(t *testing.T) {
	store := openTestStore(t)

	rec := SimulationRecord{
		Variant: "rigged", Strategy: "random", Seed: 42, Rounds: 1000, Stake: 100,
		Cost: 100000, Revenue: 61000, Net: -39000, ROI: -0.39,
		Wins: 400, Losses: 600, Traps: 12, Rigged: 700,
	}
	id, err := store.SaveSimulation(rec)
	require.NoError(t, err)

	got, err := store.SimulationByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, int64(42), got.Seed)
	assert.Equal(t, -39000, got.Net)
	assert.InDelta(t, -0.39, got.ROI, 1e-9)
	assert.Equal(t, 700, got.Rigged)

	missing, err := store.SimulationByID("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = store.SaveSimulation(SimulationRecord{Variant: "corrected", Strategy: "cw", Rounds: 10, Stake: 100, Cost: 1000})
	require.NoError(t, err)

	all, err := store.RecentSimulations("", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "corrected", all[0].Variant, "newest first")

	rigged, err := store.RecentSimulations("rigged", 10)
	require.NoError(t, err)
	require.Len(t, rigged, 1)
	assert.Equal(t, id, rigged[0].ID)
}
