package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultBoardLayout(t *testing.T) {
	b := MustDefaultBoard()

	require.Equal(t, BoardSize, b.Len())
	assert.NoError(t, b.Validate())
	assert.Equal(t, 4, b.Home())
	assert.Equal(t, 14, b.Cell(b.Home()).Label)

	trap := b.Cell(b.Trap())
	assert.Equal(t, 17, b.Trap())
	assert.Equal(t, 27, trap.Label)
	assert.Equal(t, -580, trap.Prize)
	assert.True(t, trap.Trap)
}

func TestNewBoardRejectsWrongSize(t *testing.T) {
	_, err := NewBoard(DefaultCells()[:25])
	assert.ErrorIs(t, err, ErrBoardSize)

	_, err = NewBoard(append(DefaultCells(), Cell{Label: 31}))
	assert.ErrorIs(t, err, ErrBoardSize)
}

func TestNewBoardCopiesCells(t *testing.T) {
	cells := DefaultCells()
	b, err := NewBoard(cells)
	require.NoError(t, err)

	cells[0].Prize = 1
	assert.Equal(t, 1000, b.Cell(0).Prize)

	out := b.Cells()
	out[0].Prize = 2
	assert.Equal(t, 1000, b.Cell(0).Prize)
}

func TestValidateReportsProblems(t *testing.T) {
	cells := DefaultCells()
	cells[20].Label = 10 // 30 goes missing, 10 is duplicated
	cells[17].Trap = false

	b, err := NewBoard(cells)
	require.NoError(t, err)

	verr := b.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "no cell labelled 30")
	assert.Contains(t, verr.Error(), "label 10 appears 2 times")
	assert.Contains(t, verr.Error(), "no trap cell")
	assert.Equal(t, -1, b.Trap())
}

func TestNormalizeStaysInRange(t *testing.T) {
	b := MustDefaultBoard()

	rapid.Check(t, func(t *rapid.T) {
		i := rapid.IntRange(0, BoardSize-1).Draw(t, "index")
		k := rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "offset")

		got := b.Normalize(i + k)
		if got < 0 || got >= BoardSize {
			t.Fatalf("Normalize(%d) = %d, out of range", i+k, got)
		}
		if (got-(i+k))%BoardSize != 0 {
			t.Fatalf("Normalize(%d) = %d, not congruent", i+k, got)
		}
	})
}

func TestAdvanceWrapsBothWays(t *testing.T) {
	b := MustDefaultBoard()

	tests := []struct {
		name  string
		from  int
		steps int
		dir   Direction
		want  int
	}{
		{"cw no wrap", 4, 5, Clockwise, 9},
		{"cw wraps", 20, 10, Clockwise, 4},
		{"ccw wraps", 4, 5, CounterClockwise, 25},
		{"ccw full loop", 4, 26, CounterClockwise, 4},
		{"zero steps", 7, 0, Clockwise, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Advance(tt.from, tt.steps, tt.dir))
		})
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("cw")
	require.NoError(t, err)
	assert.Equal(t, Clockwise, d)

	d, err = ParseDirection("ccw")
	require.NoError(t, err)
	assert.Equal(t, CounterClockwise, d)

	_, err = ParseDirection("up")
	assert.Error(t, err)
	assert.False(t, NoDirection.Valid())
}
