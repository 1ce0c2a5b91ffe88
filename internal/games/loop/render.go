package loop

import (
	"fmt"
	"strconv"
	"strings"

	platformcore "github.com/vovakirdan/loopdice/internal/core"
	"github.com/vovakirdan/loopdice/internal/games/loop/core"
)

const (
	gridCols = 9
	gridRows = 6
	cellW    = 6 // Content width plus one border column
	cellH    = 3 // Two content rows plus one border row

	boardW = gridCols*cellW + 1
	boardH = gridRows*cellH + 1
)

// gridPos maps a loop index to its (col, row) on the 9x6 ring: top row left
// to right, right column downwards, bottom row right to left, left column
// upwards.
func gridPos(i int) (col, row int) {
	switch {
	case i < 9:
		return i, 0
	case i < 13:
		return 8, i - 8
	case i < 22:
		return 21 - i, 5
	default:
		return 0, 26 - i
	}
}

func onRing(col, row int) bool {
	if col < 0 || col >= gridCols || row < 0 || row >= gridRows {
		return false
	}
	return row == 0 || row == gridRows-1 || col == 0 || col == gridCols-1
}

// Box-drawing glyph by arm mask: up=1, down=2, left=4, right=8.
var junctions = [16]rune{
	' ', '│', '│', '│',
	'─', '┘', '┐', '┤',
	'─', '└', '┌', '├',
	'─', '┴', '┬', '┼',
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := 1

	dst.DrawTextCentered(0, g.Title(), platformcore.ColorBrightYellow)
	g.renderGrid(dst, boardX, boardY)
	g.renderCells(dst, boardX, boardY)
	g.renderPanel(dst, boardX+cellW+2, boardY+cellH+1)

	if g.paused {
		g.drawOverlay(dst, boardX+boardW/2, boardY+boardH/2, platformcore.ColorWhite, "PAUSED", "Press P to resume")
	} else if g.session.Phase == core.PhaseResolved && g.session.Round != nil {
		g.renderResult(dst, boardX+boardW/2, boardY+boardH/2)
	} else if g.session.Bankrupt() {
		g.drawOverlay(dst, boardX+boardW/2, boardY+boardH/2, platformcore.ColorRed,
			"OUT OF MONEY", fmt.Sprintf("Rounds played: %d", g.session.Rounds), "Press R to start over")
	}

	dst.DrawTextCentered(boardY+boardH+1, g.Controls(), platformcore.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", boardW, boardH+3), platformcore.ColorGray)
}

// renderGrid draws the borders of the ring cells with proper junctions.
func (g *Game) renderGrid(dst *platformcore.Screen, x0, y0 int) {
	// A border segment exists when either neighbouring cell is on the ring
	hSeg := func(gx, gy int) bool { return onRing(gx, gy-1) || onRing(gx, gy) }
	vSeg := func(gx, gy int) bool { return onRing(gx-1, gy) || onRing(gx, gy) }

	for gy := 0; gy <= gridRows; gy++ {
		for gx := 0; gx <= gridCols; gx++ {
			mask := 0
			if vSeg(gx, gy-1) {
				mask |= 1
			}
			if vSeg(gx, gy) {
				mask |= 2
			}
			if hSeg(gx-1, gy) {
				mask |= 4
			}
			if hSeg(gx, gy) {
				mask |= 8
			}

			px, py := x0+gx*cellW, y0+gy*cellH
			if mask != 0 {
				dst.SetColored(px, py, junctions[mask], platformcore.ColorGray)
			}
			if hSeg(gx, gy) && gx < gridCols {
				for i := 1; i < cellW; i++ {
					dst.SetColored(px+i, py, '─', platformcore.ColorGray)
				}
			}
			if vSeg(gx, gy) && gy < gridRows {
				for i := 1; i < cellH; i++ {
					dst.SetColored(px, py+i, '│', platformcore.ColorGray)
				}
			}
		}
	}
}

// renderCells draws label and prize inside every ring cell.
func (g *Game) renderCells(dst *platformcore.Screen, x0, y0 int) {
	token := g.tokenCell()

	for i := 0; i < g.board.Len(); i++ {
		cell := g.board.Cell(i)
		col, row := gridPos(i)
		cx := x0 + col*cellW + 1
		cy := y0 + row*cellH + 1

		label := strconv.Itoa(cell.Label)
		labelColor := platformcore.ColorWhite
		if cell.Home {
			labelColor = platformcore.ColorCyan
		}
		if i == token {
			label = "[" + label + "]"
			labelColor = platformcore.ColorBrightYellow
		}

		dst.DrawTextColored(cx+center(label, cellW-1), cy, label, labelColor)

		prize := strconv.Itoa(cell.Prize)
		dst.DrawTextColored(cx+center(prize, cellW-1), cy+1, prize, prizeColor(cell))
	}
}

func prizeColor(c core.Cell) platformcore.Color {
	switch {
	case c.Trap:
		return platformcore.ColorBrightRed
	case c.Prize >= 1000:
		return platformcore.ColorBrightGreen
	case c.Prize <= 300:
		return platformcore.ColorGray
	default:
		return platformcore.ColorGreen
	}
}

// renderPanel draws the balance, dice and status inside the ring.
func (g *Game) renderPanel(dst *platformcore.Screen, x, y int) {
	s := g.session

	dst.DrawTextColored(x, y, fmt.Sprintf("Balance: %d", s.Balance), platformcore.ColorBrightGreen)
	dst.DrawTextColored(x+22, y, fmt.Sprintf("Stake: %d", s.Stake), platformcore.ColorYellow)
	dst.DrawTextColored(x, y+1, fmt.Sprintf("Round: %d", s.Rounds), platformcore.ColorWhite)
	dst.DrawTextColored(x+22, y+1, string(g.variant), platformcore.ColorGray)

	if faces, ok := g.shownDice(); ok {
		dst.DrawTextColored(x, y+3, diceString(faces), platformcore.ColorWhite)
		if !s.IsRolling() || g.anim.stage != stageShake {
			dst.DrawTextColored(x+27, y+3, fmt.Sprintf("= %d", faces.Sum()), platformcore.ColorBrightYellow)
		}
	} else {
		dst.DrawTextColored(x, y+3, "[?] [?] [?] [?] [?]", platformcore.ColorGray)
	}

	dst.DrawTextColored(x, y+5, directionString(s.Direction), platformcore.ColorCyan)
	dst.DrawTextColored(x, y+7, g.message, platformcore.ColorWhite)
	if g.lastErr != nil {
		dst.DrawTextColored(x, y+8, "Board misconfigured, see log", platformcore.ColorRed)
	}
}

func diceString(d core.Dice) string {
	parts := make([]string, len(d))
	for i, f := range d {
		parts[i] = "[" + strconv.Itoa(f) + "]"
	}
	return strings.Join(parts, " ")
}

func directionString(d core.Direction) string {
	switch d {
	case core.Clockwise:
		return "Direction: clockwise ▶"
	case core.CounterClockwise:
		return "Direction: ◀ counter-clockwise"
	default:
		return "Direction: press ← or →"
	}
}

// resultBanner is the one-line verdict of a finished round.
func resultBanner(r core.RoundResult, jackpotAt int) string {
	switch r.Outcome(jackpotAt) {
	case core.OutcomeJackpot:
		return fmt.Sprintf("BIG WIN! +%d", r.Prize)
	case core.OutcomeWin:
		return fmt.Sprintf("You win +%d", r.Prize)
	default:
		if r.Trap {
			return fmt.Sprintf("TRAP! %d", r.Prize)
		}
		return fmt.Sprintf("No luck %+d", r.Prize)
	}
}

// renderResult draws the modal shown after a round lands.
func (g *Game) renderResult(dst *platformcore.Screen, cx, cy int) {
	r := *g.session.Round
	color := platformcore.ColorBrightGreen
	if r.Outcome(g.cfg.Rules.JackpotThreshold) == core.OutcomeLoss {
		color = platformcore.ColorBrightRed
	}

	cell := g.board.Cell(r.End)
	g.drawOverlay(dst, cx, cy, color,
		resultBanner(r, g.cfg.Rules.JackpotThreshold),
		fmt.Sprintf("Sum %d, landed on %d", r.Sum, cell.Label),
		fmt.Sprintf("Balance: %d", g.session.Balance),
		"Press SPACE to continue",
	)
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, color platformcore.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := platformcore.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)

	inner := box.Inset(1)
	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColored(x, inner.Y+i, line, color)
	}
}

func center(s string, width int) int {
	return platformcore.Clamp((width-len([]rune(s)))/2, 0, width)
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←/→: Direction | SPACE: Roll | P: Pause | R: Restart | Q: Quit"
}
