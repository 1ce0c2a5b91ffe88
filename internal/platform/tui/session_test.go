package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/loopdice/internal/core"
)

func sendSession(m SessionModel, msg tea.Msg) SessionModel {
	next, _ := m.Update(msg)
	return next.(SessionModel)
}

func TestSessionModelFlow(t *testing.T) {
	setupLoop(t, "")
	store := openStore(t)

	m := NewSessionModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, "alice")
	assert.Contains(t, m.View(), "L O O P")

	// Ledger and back
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenLedger, m.state)
	assert.Contains(t, m.View(), "SESSION LEDGER")
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEscape})
	require.Equal(t, screenMenu, m.state)

	// Play the first listed variant and leave
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, m.state)
	require.NotNil(t, m.game)
	assert.Equal(t, "alice", m.game.player)

	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, screenMenu, m.state)
	assert.Nil(t, m.game)

	m = sendSession(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestMenuListsVariants(t *testing.T) {
	setupLoop(t, "")
	store := openStore(t)

	menu := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	ids := make([]string, len(menu.items))
	for i, item := range menu.items {
		ids[i] = item.GameID
	}
	assert.Subset(t, ids, []string{"loop", "loop_classic", "loop_rigged"})

	next, _ := menu.Update(tea.KeyMsg{Type: tea.KeyDown})
	menu = next.(MenuModel)
	next, _ = menu.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu = next.(MenuModel)
	require.NotNil(t, menu.Selected())
	assert.Equal(t, menu.items[1].GameID, menu.Selected().GameID)
}

func TestScoreboardToggleView(t *testing.T) {
	store := openStore(t)
	board := NewScoreboardModel(store, 100, 30)
	assert.Contains(t, board.View(), "No sessions recorded yet")

	next, _ := board.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	board = next.(ScoreboardModel)
	assert.Contains(t, board.View(), "SIMULATION RUNS")
	assert.Contains(t, board.View(), "No simulation runs saved")
}
