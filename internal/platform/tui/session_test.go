package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/deadline/internal/config"
	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "deadline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestSession(t *testing.T, store *storage.Store) SessionModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewSessionModel(Session{
		Store:    store,
		Username: "ana",
		Runtime:  core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 7},
	})
}

func sessionSend(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok)
	return sm
}

func TestSessionStartsGameAndReturnsToMenu(t *testing.T) {
	m := newTestSession(t, nil)
	require.Equal(t, viewMenu, m.view)
	require.Equal(t, config.VariantDeadline, m.menu.items[0].GameID)

	m = sessionSend(t, m, keyRunes("l")) // hard
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewGame, m.view)
	require.NotNil(t, m.game)
	assert.Equal(t, config.VariantDeadline, m.game.game.ID())
	assert.Equal(t, config.DifficultyHard, m.session.Options.Difficulty)

	m = sessionSend(t, m, keyRunes("b"))
	assert.Equal(t, viewMenu, m.view)
	assert.Nil(t, m.game)
	assert.Equal(t, config.DifficultyHard, m.menu.Difficulty(), "difficulty is kept across games")
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	store := openTestStore(t)
	_, err := store.SubmitBestTime(context.Background(), config.VariantDeadline, "normal", "ana", 95.5)
	require.NoError(t, err)

	m := newTestSession(t, store)
	assert.True(t, m.menu.items[0].HasBest)
	assert.InDelta(t, 95.5, m.menu.items[0].Best, 1e-9)
	assert.Contains(t, m.View(), "best 1:35")

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, viewScoreboard, m.view)
	assert.Equal(t, config.VariantDeadline, m.board.Variant())
	require.Len(t, m.board.entries, 1)
	assert.Equal(t, "ana", m.board.entries[0].Username)

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, config.VariantClassic, m.board.Variant())
	assert.Empty(t, m.board.entries)

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewMenu, m.view)
}

func TestSessionBestTimesFollowDifficulty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	_, err := store.SubmitBestTime(ctx, config.VariantDeadline, "easy", "ana", 200)
	require.NoError(t, err)
	_, err = store.SubmitBestTime(ctx, config.VariantDeadline, "normal", "ana", 60)
	require.NoError(t, err)

	m := newTestSession(t, store)
	assert.InDelta(t, 60, m.menu.items[0].Best, 1e-9)

	m = sessionSend(t, m, keyRunes("h")) // easy
	assert.InDelta(t, 200, m.menu.items[0].Best, 1e-9)

	m = sessionSend(t, m, keyRunes("l"))
	m = sessionSend(t, m, keyRunes("l")) // hard
	assert.False(t, m.menu.items[0].HasBest, "no hard win recorded")

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, viewScoreboard, m.view)
	assert.Equal(t, config.DifficultyHard, m.board.Difficulty())
	assert.Empty(t, m.board.entries)

	m = sessionSend(t, m, keyRunes("h"))
	m = sessionSend(t, m, keyRunes("h")) // easy
	require.Len(t, m.board.entries, 1)
	assert.InDelta(t, 200, m.board.entries[0].TimeRemaining, 1e-9)
	assert.Contains(t, m.View(), "(easy)")
}

func TestSessionBestTimesMenuEntry(t *testing.T) {
	m := newTestSession(t, nil)
	for range len(m.menu.items) {
		m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewScoreboard, m.view)
	assert.Contains(t, m.View(), "No winning runs yet")
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t, nil)
	m = sessionSend(t, m, keyRunes("q"))
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestSessionDefaults(t *testing.T) {
	m := NewSessionModel(Session{})
	assert.Equal(t, DefaultUsername, m.session.Username)
	assert.Equal(t, config.DifficultyNormal, m.session.Options.Difficulty)
	assert.Nil(t, m.reporter, "no store means nothing to report to")
}
