package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deadline/internal/config"
	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/leaderboard"
	"github.com/vovakirdan/deadline/internal/registry"
	"github.com/vovakirdan/deadline/internal/storage"
)

// DefaultUsername is used when no player name is known.
const DefaultUsername = "player"

// Session describes one player at one terminal.
type Session struct {
	// Store may be nil; runs are then not recorded.
	Store    *storage.Store
	Username string
	Options  registry.Options
	Runtime  core.RuntimeConfig
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewScoreboard
	viewGame
)

var noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

// SessionModel moves between the menu, the scoreboard and a game.
// Every game it starts owns a fresh state store.
type SessionModel struct {
	session  Session
	reporter *leaderboard.Reporter
	logger   *log.Logger

	view     sessionView
	menu     MenuModel
	board    ScoreboardModel
	game     *GameModel
	notice   string
	quitting bool
}

// NewSessionModel creates a session that starts on the menu.
func NewSessionModel(s Session) SessionModel {
	if s.Username == "" {
		s.Username = DefaultUsername
	}
	if s.Options.Difficulty == "" {
		s.Options.Difficulty = config.DifficultyNormal
	}
	logger := s.Options.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var reporter *leaderboard.Reporter
	if s.Store != nil {
		reporter = leaderboard.NewReporter(s.Store, s.Username, logger)
	}

	m := SessionModel{
		session:  s,
		reporter: reporter,
		logger:   logger,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	menu := NewMenuModel(m.session.Store, m.session.Username, m.session.Options.Difficulty, m.session.Runtime)
	menu.cursor = min(m.menu.cursor, len(menu.items)-1)
	return menu
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.session.Runtime.ScreenW = msg.Width
		m.session.Runtime.ScreenH = msg.Height
	case reportMsg:
		// A run abandoned on the way back to the menu reports here.
		if m.view != viewGame {
			if msg.err != nil {
				m.logger.Error("cannot record run", "run", msg.result.RunID, "err", msg.err)
			}
			if m.view == viewMenu {
				m.menu = m.newMenu()
			}
			return m, nil
		}
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.menu.openScoreboard = false
		m.board = NewScoreboardModel(m.session.Store, m.menu.Difficulty(), m.session.Runtime.ScreenW, m.session.Runtime.ScreenH)
		m.view = viewScoreboard
		return m, nil
	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		m.menu.selected = nil
		return m.startGame(id, m.menu.Difficulty())
	}
	return m, cmd
}

// startGame creates a fresh game for variant id and switches to it.
func (m SessionModel) startGame(id string, difficulty config.DifficultyPreset) (tea.Model, tea.Cmd) {
	opts := m.session.Options
	opts.Difficulty = difficulty
	game, err := registry.Create(id, opts)
	if err != nil {
		m.logger.Error("cannot start game", "variant", id, "err", err)
		m.notice = fmt.Sprintf("Cannot start %s: %v", id, err)
		return m, nil
	}

	m.session.Options.Difficulty = difficulty
	m.notice = ""
	gm := NewGameModel(game, m.session.Runtime, m.reporter, m.logger)
	m.game = &gm
	m.view = viewGame
	m.logger.Info("game started", "variant", id, "user", m.session.Username, "difficulty", difficulty)
	return m, gm.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
	case m.game.BackToMenu():
		m.game = nil
		m.view = viewMenu
		m.menu = m.newMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = board
	}

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		m.view = viewMenu
		m.menu = m.newMenu()
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScoreboard:
		return m.board.View()
	}
	if m.notice != "" {
		return m.menu.View() + "\n" + centerText(noticeStyle.Render(m.notice), m.session.Runtime.ScreenW)
	}
	return m.menu.View()
}

// RunSession runs the menu, scoreboard and games until the user quits.
func RunSession(s Session) error {
	p := tea.NewProgram(NewSessionModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
