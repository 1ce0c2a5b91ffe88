package core

import (
	"fmt"
	"math/rand"
)

// scriptedRand replays fixed draws and falls back to a seeded source once
// the script runs out.
type scriptedRand struct {
	ints     []int
	floats   []float64
	fallback *rand.Rand
}

func newScripted(floats []float64, ints ...int) *scriptedRand {
	return &scriptedRand{
		ints:     ints,
		floats:   floats,
		fallback: rand.New(rand.NewSource(1)),
	}
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return s.fallback.Intn(n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted Intn(%d) got %d", n, v))
	}
	return v
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return s.fallback.Float64()
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// throwFor returns Intn draws that make RollDice produce the given sum.
func throwFor(sum int) []int {
	draws := make([]int, DiceCount)
	remain := sum - MinSum
	for i := range draws {
		add := min(remain, DieFaces-1)
		draws[i] = add
		remain -= add
	}
	return draws
}

// flatBoard has every label 5..30 with generous prizes and no trap.
func flatBoard() *Board {
	cells := make([]Cell, BoardSize)
	for i := range cells {
		cells[i] = Cell{Label: MinSum + i, Prize: 500 + i}
	}
	cells[0].Home = true
	b, err := NewBoard(cells)
	if err != nil {
		panic(err)
	}
	return b
}

// boardWithout replaces the cell labelled missing with an out-of-range label.
func boardWithout(missing int) *Board {
	cells := DefaultCells()
	for i := range cells {
		if cells[i].Label == missing {
			cells[i].Label = 99
		}
	}
	b, err := NewBoard(cells)
	if err != nil {
		panic(err)
	}
	return b
}
