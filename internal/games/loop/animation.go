package loop

import (
	"github.com/vovakirdan/loopdice/internal/games/loop/core"
)

// animStage is the part of a round currently being shown.
type animStage int

const (
	stageNone   animStage = iota
	stageShake            // Random faces flicker
	stageWalk             // Token moves one cell per step
	stageSettle           // Token rests on the landing cell
)

func (s animStage) String() string {
	switch s {
	case stageShake:
		return "shake"
	case stageWalk:
		return "walk"
	case stageSettle:
		return "settle"
	default:
		return "none"
	}
}

// animation holds the presentation of a round in flight. Outcome state
// lives in the session; this only tracks what is on screen.
type animation struct {
	stage animStage
	ticks int // Ticks spent in the current frame
	frame int // Shake frames shown
	faces core.Dice
	path  []core.StepEvent
	step  int // Path events consumed
	token int // Displayed token cell
}

// startShake begins the dice animation for the round just rolled.
func (g *Game) startShake() {
	g.anim = animation{
		stage: stageShake,
		faces: core.RollDice(g.fx),
		token: g.session.Cell,
	}
	if g.cfg.Animation.ShakeFrames <= 0 {
		g.startWalk()
	}
}

// startWalk reveals the real dice and puts the token on the start cell.
func (g *Game) startWalk() {
	round := g.session.Round
	g.anim.stage = stageWalk
	g.anim.ticks = 0
	g.anim.faces = round.Dice
	g.anim.path = core.Path(g.board, *round)
	g.anim.step = 0
	g.anim.token = round.Start

	if len(g.anim.path) == 0 {
		g.startSettle()
	}
}

func (g *Game) startSettle() {
	g.anim.stage = stageSettle
	g.anim.ticks = 0
	if g.cfg.Animation.SettleTicks <= 0 {
		g.finishAnimation()
	}
}

// finishAnimation lands the token and hands control back to the player.
func (g *Game) finishAnimation() {
	g.anim.stage = stageNone
	g.anim.token = g.session.Round.End
	g.complete()
}

// advanceAnimation moves the current round forward by one tick.
func (g *Game) advanceAnimation() {
	g.anim.ticks++

	switch g.anim.stage {
	case stageShake:
		if g.anim.ticks < atLeastOne(g.cfg.Animation.ShakeTicks) {
			return
		}
		g.anim.ticks = 0
		g.anim.frame++
		if g.anim.frame >= g.cfg.Animation.ShakeFrames {
			g.startWalk()
			return
		}
		g.anim.faces = core.RollDice(g.fx)

	case stageWalk:
		if g.anim.ticks < atLeastOne(g.cfg.Animation.StepTicks) {
			return
		}
		g.anim.ticks = 0
		ev := g.anim.path[g.anim.step]
		g.anim.token = ev.Index
		g.anim.step++
		if ev.Final {
			g.startSettle()
		}

	case stageSettle:
		if g.anim.ticks >= g.cfg.Animation.SettleTicks {
			g.finishAnimation()
		}

	default:
		// Rolling without an animation only happens if a caller skipped
		// startShake; land immediately.
		g.finishAnimation()
	}
}

// tokenCell returns the cell the token is drawn on.
func (g *Game) tokenCell() int {
	if g.session.IsRolling() {
		return g.anim.token
	}
	return g.session.Cell
}

// shownDice returns the faces to display, or false before the first roll.
func (g *Game) shownDice() (core.Dice, bool) {
	switch {
	case g.session.IsRolling():
		return g.anim.faces, true
	case g.session.Round != nil:
		return g.session.Round.Dice, true
	default:
		return core.Dice{}, false
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
