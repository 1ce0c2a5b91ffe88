// Package core contains the pure rules of the loop board game: the board
// topology, dice, the round resolver, the session state machine and the
// batch simulator. Nothing here knows about ticks, terminals or storage.
package core

import (
	"errors"
	"fmt"
	"sort"
)

// BoardSize is the number of cells on the loop.
const BoardSize = 26

// Direction is the travel sense chosen before each round.
type Direction int

const (
	CounterClockwise Direction = -1
	NoDirection      Direction = 0
	Clockwise        Direction = 1
)

// Valid reports whether the token can travel in this direction.
func (d Direction) Valid() bool {
	return d == Clockwise || d == CounterClockwise
}

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	default:
		return "none"
	}
}

// ParseDirection parses "cw" or "ccw".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "cw", "clockwise":
		return Clockwise, nil
	case "ccw", "counter-clockwise", "counterclockwise":
		return CounterClockwise, nil
	}
	return NoDirection, fmt.Errorf("loop: unknown direction %q", s)
}

// Cell is one fixed position on the loop.
type Cell struct {
	Label int  // Number printed on the cell; matched against the dice sum
	Prize int  // Amount credited on landing, negative for the trap
	Trap  bool // Marks the penalty cell
	Home  bool // Marks the cell the token starts from
}

// DefaultCells returns the stock 26-cell board in loop order.
func DefaultCells() []Cell {
	return []Cell{
		{Label: 10, Prize: 1000}, {Label: 17, Prize: 400}, {Label: 12, Prize: 1200}, {Label: 15, Prize: 200},
		{Label: 14, Prize: 1000, Home: true},
		{Label: 13, Prize: 600}, {Label: 16, Prize: 1200}, {Label: 11, Prize: 200}, {Label: 18, Prize: 1000},

		{Label: 9, Prize: 500}, {Label: 20, Prize: 1400}, {Label: 7, Prize: 100}, {Label: 22, Prize: 1000},

		{Label: 5, Prize: 400}, {Label: 24, Prize: 1400}, {Label: 29, Prize: 300}, {Label: 26, Prize: 1200},
		{Label: 27, Prize: -580, Trap: true},
		{Label: 28, Prize: 1600}, {Label: 25, Prize: 300}, {Label: 30, Prize: 6000}, {Label: 23, Prize: 200},

		{Label: 6, Prize: 1400}, {Label: 21, Prize: 300}, {Label: 8, Prize: 1200}, {Label: 19, Prize: 300},
	}
}

// ErrBoardSize is returned when a board does not have exactly BoardSize cells.
var ErrBoardSize = fmt.Errorf("loop: board must have exactly %d cells", BoardSize)

// Board is an immutable cyclic sequence of cells.
type Board struct {
	cells   []Cell
	byLabel map[int]int
	home    int
	trap    int
}

// NewBoard builds a board from cells in loop order. Labels do not have to
// cover every dice sum; gaps surface as BoardConfigurationError at play time
// and are reported up front by Validate.
func NewBoard(cells []Cell) (*Board, error) {
	if len(cells) != BoardSize {
		return nil, fmt.Errorf("%w, got %d", ErrBoardSize, len(cells))
	}

	b := &Board{
		cells:   make([]Cell, len(cells)),
		byLabel: make(map[int]int, len(cells)),
		home:    -1,
		trap:    -1,
	}
	copy(b.cells, cells)

	for i, c := range b.cells {
		if _, dup := b.byLabel[c.Label]; !dup {
			b.byLabel[c.Label] = i
		}
		if c.Home && b.home < 0 {
			b.home = i
		}
		if c.Trap && b.trap < 0 {
			b.trap = i
		}
	}
	if b.home < 0 {
		b.home = 0
	}
	return b, nil
}

// MustDefaultBoard returns the stock board.
func MustDefaultBoard() *Board {
	b, err := NewBoard(DefaultCells())
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of cells.
func (b *Board) Len() int {
	return len(b.cells)
}

// Normalize maps any integer onto a valid cell index.
func (b *Board) Normalize(i int) int {
	n := len(b.cells)
	return ((i % n) + n) % n
}

// Cell returns the cell at index i, wrapping around the loop.
func (b *Board) Cell(i int) Cell {
	return b.cells[b.Normalize(i)]
}

// Cells returns a copy of the cells in loop order.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Home returns the index of the starting cell.
func (b *Board) Home() int {
	return b.home
}

// Trap returns the index of the trap cell, or -1 if the board has none.
func (b *Board) Trap() int {
	return b.trap
}

// IndexOfLabel finds the cell carrying the given label.
func (b *Board) IndexOfLabel(label int) (int, bool) {
	i, ok := b.byLabel[label]
	return i, ok
}

// Advance returns the index reached after moving steps cells in dir from i.
func (b *Board) Advance(i, steps int, dir Direction) int {
	return b.Normalize(i + steps*int(dir))
}

// Validate reports every inconsistency that would make a round fall back to
// the zero-prize default: missing or duplicate labels for dice sums, and a
// missing trap cell.
func (b *Board) Validate() error {
	var errs []error

	counts := make(map[int]int, len(b.cells))
	for _, c := range b.cells {
		counts[c.Label]++
	}

	var dups []int
	for label, n := range counts {
		if n > 1 {
			dups = append(dups, label)
		}
	}
	sort.Ints(dups)
	for _, label := range dups {
		errs = append(errs, fmt.Errorf("label %d appears %d times", label, counts[label]))
	}

	for sum := MinSum; sum <= MaxSum; sum++ {
		if counts[sum] == 0 {
			errs = append(errs, fmt.Errorf("no cell labelled %d", sum))
		}
	}

	if b.trap < 0 {
		errs = append(errs, errors.New("no trap cell"))
	}

	return errors.Join(errs...)
}
