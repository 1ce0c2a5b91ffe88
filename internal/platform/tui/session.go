package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/loopdice/internal/core"
	"github.com/vovakirdan/loopdice/internal/registry"
	"github.com/vovakirdan/loopdice/internal/storage"
)

// screenState is the screen a SessionModel is showing.
type screenState int

const (
	screenMenu screenState = iota
	screenGame
	screenLedger
)

// SessionModel manages the full flow of one connection inside a single
// Bubble Tea program: menu -> game or ledger -> menu.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	state    screenState
	menu     MenuModel
	game     *Model
	ledger   *ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		state:    screenMenu,
		menu:     NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.state {
	case screenGame:
		return m.updateGame(msg)
	case screenLedger:
		return m.updateLedger(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		ledger := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.ledger = &ledger
		m.state = screenLedger
		return m, m.ledger.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Menu only lists registered games
			return m, nil
		}

		m.config = m.menu.Config()
		m.config.Seed = 0 // Fresh seed per session
		gameModel := NewModel(game, m.store, m.config, m.username)
		m.game = &gameModel
		m.state = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateLedger handles updates when the ledger is open.
func (m SessionModel) updateLedger(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.ledger.Update(msg)
	if ledger, ok := newModel.(ScoreboardModel); ok {
		m.ledger = &ledger
	}

	if m.ledger.IsGoingBack() {
		return m.backToMenu()
	}

	if m.ledger.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// backToMenu drops the current screen and shows a fresh menu.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.state = screenMenu
	m.game = nil
	m.ledger = nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case screenGame:
		return m.game.View()
	case screenLedger:
		return m.ledger.View()
	default:
		return m.menu.View()
	}
}
