// Package loop is the playable board game: it drives a core.Session tick by
// tick, plays the dice and token animations and renders the 26-cell ring.
package loop

import (
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/loopdice/internal/config"
	platformcore "github.com/vovakirdan/loopdice/internal/core"
	"github.com/vovakirdan/loopdice/internal/games/loop/core"
	"github.com/vovakirdan/loopdice/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// logger receives board configuration warnings
var logger = log.Default()

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger replaces the logger used for configuration warnings.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// GameID returns the registry ID of a variant.
func GameID(v core.Variant) string {
	switch v {
	case core.VariantClassic:
		return "loop_classic"
	case core.VariantRigged:
		return "loop_rigged"
	default:
		return "loop"
	}
}

func init() {
	for _, v := range core.Variants() {
		variant := v
		registry.Register(GameID(variant), func() registry.Game {
			return New(variant)
		})
	}
}

// Game implements registry.Game for one variant.
type Game struct {
	variant core.Variant
	rng     *rand.Rand // Round outcomes
	fx      *rand.Rand // Cosmetic dice faces; kept apart so outcomes only depend on the seed
	tick    uint64

	cfg      config.LoopConfig
	board    *core.Board
	resolver *core.Resolver
	session  core.Session
	anim     animation

	message  string
	lastErr  error // Last board configuration error, if any
	paused   bool
	tooSmall bool

	screenW int
	screenH int
}

// New creates a game for the given variant.
func New(v core.Variant) *Game {
	return &Game{variant: v}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.variant {
	case core.VariantClassic:
		return "Loop Dice (Classic)"
	case core.VariantRigged:
		return "Loop Dice (Rigged)"
	default:
		return "Loop Dice"
	}
}

// Summary describes the walking rule for menus.
func (g *Game) Summary() string {
	switch g.variant {
	case core.VariantClassic:
		return "Start on the cell labelled with the sum, walk sum cells"
	case core.VariantRigged:
		return "Walk from the token; the house usually picks the throw"
	default:
		return "Start on the cell labelled with the sum, walk sum-1 cells"
	}
}

// Variant returns the walking variant.
func (g *Game) Variant() core.Variant {
	return g.variant
}

// Reset loads configuration and starts a fresh session.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.fx = rand.New(rand.NewSource(seed + 1))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.lastErr = nil
	g.anim = animation{}

	g.loadConfig()
	g.resolver = ResolverFor(g.cfg, g.variant)
	g.board = g.resolver.Board()
	g.session = core.NewSession(g.board, g.cfg.Rules.StartBalance, g.cfg.Rules.Stake)
	g.message = "Choose a direction"

	g.checkScreenSize()
}

// loadConfig loads YAML config, falling back to defaults on error.
func (g *Game) loadConfig() {
	cfg, err := config.LoadLoop(configPath)
	if err != nil {
		logger.Error("loading config, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultLoopConfig()
	}
	g.cfg = cfg
}

// ResolverFor builds a resolver for variant from a loaded configuration.
func ResolverFor(cfg config.LoopConfig, v core.Variant) *core.Resolver {
	return core.NewResolver(buildBoard(cfg.Board.Cells), v, rulesFrom(cfg.Rules))
}

// buildBoard converts configured cells into a board. A board of the wrong
// size is replaced by the built-in one; other problems are only logged
// because they surface per round as configuration errors.
func buildBoard(cells []config.CellConfig) *core.Board {
	if len(cells) == 0 {
		return core.MustDefaultBoard()
	}

	converted := make([]core.Cell, len(cells))
	for i, c := range cells {
		converted[i] = core.Cell{Label: c.Label, Prize: c.Prize, Trap: c.Trap, Home: c.Home}
	}

	board, err := core.NewBoard(converted)
	if err != nil {
		logger.Warn("configured board rejected, using built-in board", "err", err)
		return core.MustDefaultBoard()
	}
	if err := board.Validate(); err != nil {
		logger.Warn("configured board is inconsistent", "err", err)
	}
	return board
}

func rulesFrom(r config.RulesConfig) core.Rules {
	return core.Rules{
		RigRate:          r.RigRate,
		BadPrizeCeiling:  r.BadPrizeCeiling,
		PlausibleMin:     r.PlausibleMin,
		PlausibleMax:     r.PlausibleMax,
		JackpotThreshold: r.JackpotThreshold,
	}
}

// checkScreenSize checks if the screen can hold the ring and the footer.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < boardW || g.screenH < boardH+3
}

// Resize adapts the layout to a new screen size without ending the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	// Restart is performed by the platform once the session is over
	if g.session.Bankrupt() {
		return platformcore.StepResult{State: g.State()}
	}

	switch g.session.Phase {
	case core.PhaseIdle, core.PhaseDirectionChosen:
		g.handleIdle(in)
	case core.PhaseRolling:
		g.advanceAnimation()
	case core.PhaseResolved:
		if in.Has(platformcore.ActionConfirm) {
			g.acknowledge()
		}
	}

	return platformcore.StepResult{State: g.State()}
}

// handleIdle processes direction and roll input between rounds.
func (g *Game) handleIdle(in platformcore.InputFrame) {
	switch {
	case in.Has(platformcore.ActionLeft):
		g.choose(core.CounterClockwise)
	case in.Has(platformcore.ActionRight):
		g.choose(core.Clockwise)
	}

	if in.Has(platformcore.ActionConfirm) {
		g.roll()
	}
}

func (g *Game) choose(d core.Direction) {
	s, err := g.session.ChooseDirection(d)
	if err != nil {
		g.message = userMessage(err)
		return
	}
	g.session = s
	g.message = "Press SPACE to roll"
}

// roll pays the stake, resolves the round and starts the shake.
func (g *Game) roll() {
	s, err := g.session.Roll(g.resolver, g.rng)

	var cfgErr *core.BoardConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		logger.Warn("dice sum has no matching cell", "variant", cfgErr.Variant, "sum", cfgErr.Sum)
		g.lastErr = err
	case err != nil:
		g.message = userMessage(err)
		return
	}

	g.session = s
	g.message = "Rolling..."
	g.startShake()
}

// acknowledge dismisses the result and sends the token home.
func (g *Game) acknowledge() {
	s, err := g.session.Acknowledge()
	if err != nil {
		logger.Debug("acknowledge rejected", "err", err)
		return
	}
	g.session = s
	g.anim = animation{}
	if g.session.Bankrupt() {
		g.message = "Out of money"
		return
	}
	g.message = "Choose a direction"
}

// complete lands the token and applies the prize.
func (g *Game) complete() {
	s, err := g.session.Complete()
	if err != nil {
		logger.Debug("complete rejected", "err", err)
		return
	}
	g.session = s
	g.message = resultBanner(*s.Round, g.cfg.Rules.JackpotThreshold)
}

// userMessage turns a rejected transition into a status line.
func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrNoDirection):
		return "Choose a direction first"
	case errors.Is(err, core.ErrInsufficientBalance):
		return "Not enough money for the stake"
	case errors.Is(err, core.ErrRollInProgress):
		return "Wait for the dice"
	default:
		return err.Error()
	}
}

// Session returns a copy of the current session.
func (g *Game) Session() core.Session {
	return g.session
}

// Board returns the board in play.
func (g *Game) Board() *core.Board {
	return g.board
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.session.Balance,
		Rounds:   g.session.Rounds,
		GameOver: g.session.Bankrupt(),
		Paused:   g.paused || g.tooSmall,
	}
}
