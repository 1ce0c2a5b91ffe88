package loop

import (
	"github.com/vovakirdan/loopdice/internal/games/loop/core"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Variant   core.Variant
	Phase     core.Phase
	Stage     string
	Balance   int
	Rounds    int
	Cell      int // Session token cell
	Token     int // Displayed token cell
	Direction core.Direction
	Dice      core.Dice
	Message   string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	dice, _ := g.shownDice()
	return Snapshot{
		Tick:      g.tick,
		Variant:   g.variant,
		Phase:     g.session.Phase,
		Stage:     g.anim.stage.String(),
		Balance:   g.session.Balance,
		Rounds:    g.session.Rounds,
		Cell:      g.session.Cell,
		Token:     g.tokenCell(),
		Direction: g.session.Direction,
		Dice:      dice,
		Message:   g.message,
	}
}
