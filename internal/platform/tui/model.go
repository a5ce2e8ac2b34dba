package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/gamestate"
	"github.com/vovakirdan/deadline/internal/leaderboard"
	"github.com/vovakirdan/deadline/internal/minigame"
	"github.com/vovakirdan/deadline/internal/registry"
)

const (
	// holdWindow is how long a move key keeps its direction without a repeat.
	holdWindow    = 150 * time.Millisecond
	statusTTL     = 3 * time.Second
	reportTimeout = 5 * time.Second
)

var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 3)
	modalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	modalDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	feedbackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// abandoner is implemented by games that can end a run on request.
type abandoner interface {
	Abandon()
}

// focusState is written by the transition listener and read on the next tick.
type focusState struct {
	capture bool
	dirty   bool
}

type reportMsg struct {
	result leaderboard.Result
	err    error
}

type screenshotMsg struct {
	path string
	err  error
}

// GameModel runs one variant inside a Bubble Tea program.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     *KeyMapper
	held     *core.HeldInput
	pending  core.InputFrame
	input    textinput.Model
	focus    *focusState
	reporter *leaderboard.Reporter
	logger   *log.Logger
	loop     uint64

	state       core.GameState
	lastTick    time.Time
	reportedRun string
	status      string
	statusUntil time.Time

	exitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. reporter may be nil when no
// database is available.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, reporter *leaderboard.Reporter, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = 32

	focus := &focusState{}
	game.OnTransition(func(tr gamestate.Transition) {
		focus.capture = tr.CapturePointer
		focus.dirty = true
	})

	hold := int(float64(cfg.TickRate) * holdWindow.Seconds())

	return GameModel{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:   cfg,
		keys:     NewKeyMapper(),
		held:     core.NewHeldInput(hold),
		pending:  core.NewInputFrame(),
		input:    ti,
		focus:    focus,
		reporter: reporter,
		logger:   logger.With("variant", game.ID()),
		loop:     nextLoop(),
	}
}

// Init resets the game to its title screen and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if msg.loop != m.loop {
			return m, nil
		}
		return m.handleTick(msg.At)
	case reportMsg:
		m.handleReport(msg)
		return m, nil
	case screenshotMsg:
		if msg.err != nil {
			m.logger.Warn("screenshot failed", "err", msg.err)
			m.setStatus("Screenshot failed")
		} else {
			m.setStatus("Saved " + msg.path)
		}
		return m, nil
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		return m, m.screenshotCmd()
	}
	if m.input.Focused() {
		return m.handleChallengeKey(msg)
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		return m.leave(true)
	case action == core.ActionBack:
		return m.leave(m.exitOnBack)
	case isMovement(action):
		m.held.Press(action)
	case action != core.ActionNone:
		m.pending.Set(action)
	}
	return m, nil
}

// handleChallengeKey routes keys to the answer field while a challenge is open.
func (m GameModel) handleChallengeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.leave(true)
	case tea.KeyEsc:
		m.game.CancelChallenge()
		m.input.Blur()
		m.setStatus("Task left unfinished")
		return m, nil
	case tea.KeyEnter:
		_, task := m.game.Challenge()
		out := m.game.SubmitAnswer(m.input.Value())
		m.input.SetValue("")
		switch out {
		case minigame.Solved:
			m.input.Blur()
			m.setStatus("Done: " + task.Name)
		case minigame.Failed:
			m.input.Blur()
			m.setStatus("Failed: " + task.Name + ". Try the station again")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := m.config.TickDelta()
	if !m.lastTick.IsZero() {
		delta = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now
	if !m.statusUntil.IsZero() && now.After(m.statusUntil) {
		m.status = ""
		m.statusUntil = time.Time{}
	}

	frame := m.pending.Clone()
	m.pending.Clear()
	if !m.input.Focused() {
		m.held.Apply(&frame)
	}

	result := m.game.Step(frame, delta)
	m.state = result.State
	for _, ev := range result.Events {
		m.logger.Debug("event", "kind", ev.Kind, "detail", ev.Detail)
		if text := eventStatus(ev); text != "" {
			m.setStatus(text)
		}
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.loop), m.syncChallenge(), m.syncCursor()}
	if m.state.GameOver && m.state.RunID != m.reportedRun {
		m.reportedRun = m.state.RunID
		cmds = append(cmds, m.reportCmd())
	}
	return m, tea.Batch(cmds...)
}

// syncChallenge focuses the answer field when a challenge opens and blurs it
// when the challenge closes on its own (for example when time runs out).
func (m *GameModel) syncChallenge() tea.Cmd {
	switch {
	case m.state.Paused && !m.input.Focused():
		m.held.Release()
		m.input.SetValue("")
		if ch, _ := m.game.Challenge(); ch != nil {
			m.input.Placeholder = ch.Placeholder()
		}
		return m.input.Focus()
	case !m.state.Paused && m.input.Focused():
		m.input.Blur()
	}
	return nil
}

func (m *GameModel) syncCursor() tea.Cmd {
	if !m.focus.dirty {
		return nil
	}
	m.focus.dirty = false
	if m.focus.capture {
		return tea.HideCursor
	}
	return tea.ShowCursor
}

// leave abandons a run in progress and either quits or returns to the menu.
func (m GameModel) leave(quit bool) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if st := m.game.State(); st.Started && !st.GameOver {
		if a, ok := m.game.(abandoner); ok {
			a.Abandon()
			m.state = m.game.State()
			m.reportedRun = m.state.RunID
			if cmd := m.reportCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	m.input.Blur()
	cmds = append(cmds, tea.ShowCursor)
	if quit {
		m.quitting = true
		cmds = append(cmds, tea.Quit)
	} else {
		m.backToMenu = true
	}
	return m, tea.Sequence(cmds...)
}

func (m GameModel) reportCmd() tea.Cmd {
	if m.reporter == nil {
		return nil
	}
	r := m.reporter
	snap := m.game.Snapshot()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		res, err := r.Report(ctx, snap)
		return reportMsg{result: res, err: err}
	}
}

func (m *GameModel) handleReport(msg reportMsg) {
	if msg.err != nil {
		m.logger.Error("cannot record run", "run", msg.result.RunID, "err", msg.err)
		m.setStatus("Could not save this run")
		return
	}
	if msg.result.NewBest {
		m.setStatus("New best time for " + m.reporter.Username() + "!")
	}
}

func (m *GameModel) setStatus(text string) {
	m.status = text
	m.statusUntil = m.lastTick.Add(statusTTL)
	if m.lastTick.IsZero() {
		m.statusUntil = time.Now().Add(statusTTL)
	}
}

func eventStatus(ev core.Event) string {
	switch ev.Kind {
	case core.EventHit:
		return "Distracted by " + ev.Detail + "!"
	case core.EventPowerUp:
		return "Picked up " + ev.Detail
	case core.EventCollected:
		return "Collected " + ev.Detail
	}
	return ""
}

func (m GameModel) screenshotCmd() tea.Cmd {
	text := m.screen.String()
	id := m.game.ID()
	return func() tea.Msg {
		path, err := saveScreenshot(id, text)
		return screenshotMsg{path: path, err: err}
	}
}

// saveScreenshot writes a plain-text frame to ~/.deadline/screenshots.
func saveScreenshot(id, text string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".deadline", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}
	name := fmt.Sprintf("%s_%s.txt", id, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.input.Focused() {
		if view, ok := m.challengeView(); ok {
			return view
		}
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	if m.status != "" {
		m.screen.DrawTextCentered(m.screen.Height()-1, m.status, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// challengeView draws the modal for the open challenge over a blank screen.
func (m GameModel) challengeView() (string, bool) {
	ch, task := m.game.Challenge()
	if ch == nil {
		return "", false
	}

	lines := []string{
		modalTitleStyle.Render(task.Name),
		modalDimStyle.Render(task.Description),
		"",
	}
	lines = append(lines, ch.Prompt()...)
	lines = append(lines, "", m.input.View())
	if fb := ch.Feedback(); fb != "" {
		lines = append(lines, "", feedbackStyle.Render(fb))
	}
	footer := fmt.Sprintf("Time left %s  |  enter submit  |  esc leave", formatClock(m.game.Snapshot().TimeRemaining))
	lines = append(lines, "", modalDimStyle.Render(footer))

	box := modalStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box), true
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// formatClock renders seconds as m:ss, truncating fractions like the HUD.
func formatClock(seconds float64) string {
	s := max(int(seconds), 0)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// Run plays a single variant until the user quits. Back also quits since
// there is no menu to return to.
func Run(game registry.Game, cfg core.RuntimeConfig, reporter *leaderboard.Reporter, logger *log.Logger) error {
	model := NewGameModel(game, cfg, reporter, logger)
	model.exitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
