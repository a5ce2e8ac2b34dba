package deadline

import (
	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/gamestate"
	"github.com/vovakirdan/deadline/internal/minigame"
)

// Challenge returns the open challenge and the task it belongs to, or nil.
func (g *Game) Challenge() (minigame.Challenge, gamestate.Task) {
	id := g.store.ActiveMiniGame()
	if g.challenge == nil || id == "" {
		return nil, gamestate.Task{}
	}
	t, _ := g.store.Task(id)
	return g.challenge, t
}

// SubmitAnswer judges input against the open challenge. Solving completes the
// task and failing closes it. Without an open challenge it returns Pending.
func (g *Game) SubmitAnswer(input string) minigame.Outcome {
	id := g.store.ActiveMiniGame()
	if g.challenge == nil || id == "" || g.store.Phase() != gamestate.PhasePlaying {
		return minigame.Pending
	}

	out := g.challenge.Submit(input)
	switch out {
	case minigame.Solved:
		g.store.CompleteTask(id)
		g.challenge = nil
		g.emit(core.EventTaskCompleted, id)
	case minigame.Failed:
		g.store.CancelTask()
		g.challenge = nil
		g.emit(core.EventTaskFailed, id)
	}
	return out
}

// CancelChallenge closes the open challenge without completing its task.
func (g *Game) CancelChallenge() {
	if g.challenge == nil && g.store.ActiveMiniGame() == "" {
		return
	}
	g.store.CancelTask()
	g.challenge = nil
}
