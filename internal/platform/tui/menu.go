package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/deadline/internal/config"
	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/registry"
	"github.com/vovakirdan/deadline/internal/storage"
)

var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem is one selectable line in the menu.
type MenuItem struct {
	GameID  string // empty for the scoreboard entry
	Title   string
	Best    float64
	HasBest bool
}

// MenuModel picks a variant and a difficulty, or opens the scoreboard.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	difficulty int
	width      int
	height     int
	username   string
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	store      *storage.Store

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu listing every registered variant. With a
// store, each variant shows the user's best time at the selected difficulty.
func NewMenuModel(store *storage.Store, username string, preset config.DifficultyPreset, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+1)
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}
	items = append(items, MenuItem{Title: "Best times"})

	m := MenuModel{
		items:      items,
		difficulty: difficultyIndex(preset),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		username:   username,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		store:      store,
	}
	m.loadBests()
	return m
}

// difficultyIndex returns the position of preset in the picker, or normal.
func difficultyIndex(preset config.DifficultyPreset) int {
	for i, d := range difficulties {
		if d == preset {
			return i
		}
	}
	return 1
}

// loadBests fills each variant's best time at the selected difficulty.
func (m *MenuModel) loadBests() {
	for i := range m.items {
		item := &m.items[i]
		item.Best, item.HasBest = 0, false
		if m.store == nil || m.username == "" || item.GameID == "" {
			continue
		}
		best, ok, err := m.store.BestTime(context.Background(), item.GameID, string(m.Difficulty()), m.username)
		if err == nil && ok {
			item.Best, item.HasBest = best, true
		}
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if m.difficulty > 0 {
			m.difficulty--
			m.loadBests()
		}
	case MenuActionRight:
		if m.difficulty < len(difficulties)-1 {
			m.difficulty++
			m.loadBests()
		}
	case MenuActionSelect:
		item := m.items[m.cursor]
		if item.GameID == "" {
			m.openScoreboard = true
			return m, nil
		}
		m.selected = &item
	case MenuActionScoreboard:
		m.openScoreboard = true
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("D E A D L I N E"), m.width))
	b.WriteString("\n\n")
	sub := "Finish studying before the room closes in"
	if m.username != "" {
		sub = "Studying as " + m.username
	}
	b.WriteString(centerText(menuDimStyle.Render(sub), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := item.Title
		if item.HasBest {
			line += fmt.Sprintf("  (best %s)", formatClock(item.Best))
		}
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", m.Difficulty()), m.width))
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen variant, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Difficulty returns the preset currently shown in the menu.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficulties[m.difficulty]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring printable cells only.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
