package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/loopdice/internal/core"
	loopcore "github.com/vovakirdan/loopdice/internal/games/loop/core"
	"github.com/vovakirdan/loopdice/internal/registry"
	"github.com/vovakirdan/loopdice/internal/storage"
)

// logger receives runtime warnings. The CLI points it at its own logger so
// output can be redirected while a program owns the terminal.
var logger = log.Default()

// SetLogger replaces the logger used by play sessions.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	logger = l
}

// resizer is implemented by games that can adapt to a new screen size
// without losing the session.
type resizer interface {
	Resize(width, height int)
}

// variantGame is implemented by games that report their walking variant.
type variantGame interface {
	Variant() loopcore.Variant
}

// Model is the Bubble Tea model for one play session.
type Model struct {
	game         registry.Game
	screen       *core.Screen
	store        *storage.Store
	config       core.RuntimeConfig
	inputFrame   core.InputFrame
	gameState    core.GameState
	keyMapper    *KeyMapper
	player       string
	sessionID    string
	startBalance int
	quitting     bool
	backToMenu   bool
	saved        bool // Whether the current session has been written to the ledger
}

// NewModel creates a model for the given game and starts a fresh session.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if player == "" {
		player = "local"
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		player:     player,
	}
	m.startSession()
	return m
}

// startSession resets the game and opens a new ledger entry.
func (m *Model) startSession() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.startBalance = m.gameState.Score
	m.sessionID = uuid.NewString()
	m.saved = false
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveSession()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.saveSession()
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without resize support restart with the new dimensions
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.saveSession()
		m.config.Seed = time.Now().UnixNano()
		m.startSession()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveSession()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveSession writes the session to the ledger once. Sessions without a
// completed round are not recorded.
func (m *Model) saveSession() {
	if m.saved || m.gameState.Rounds == 0 {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}

	variant := ""
	if v, ok := m.game.(variantGame); ok {
		variant = string(v.Variant())
	}

	// Best-effort save, the session ends regardless
	if _, err := m.store.SaveSession(storage.SessionRecord{
		ID:           m.sessionID,
		GameID:       m.game.ID(),
		Variant:      variant,
		Player:       m.player,
		StartBalance: m.startBalance,
		Balance:      m.gameState.Score,
		Rounds:       m.gameState.Rounds,
	}); err != nil {
		logger.Warn("could not save session", "session", m.sessionID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".loopdice", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// SessionID returns the ledger ID of the current session.
func (m Model) SessionID() string {
	return m.sessionID
}

// Run starts the Bubble Tea program for a single game.
// Returns true if the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (goBack bool, err error) {
	model := NewModel(game, store, cfg, "local")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
