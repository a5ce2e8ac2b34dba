// Package minigame implements the study challenges behind each task.
// A challenge only judges answers; opening and closing tasks is the
// caller's job, driven by the Outcome of each submission.
package minigame

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/gamestate"
)

// Outcome is the result of one submission.
type Outcome int

const (
	// Pending keeps the challenge open.
	Pending Outcome = iota
	// Solved completes the task.
	Solved
	// Failed closes the challenge without completing the task.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Solved:
		return "solved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Challenge is one open task interaction.
type Challenge interface {
	Kind() gamestate.TaskKind
	// Prompt returns the lines to show above the input field.
	Prompt() []string
	// Placeholder is a short hint for the input field.
	Placeholder() string
	// Submit judges one line of input.
	Submit(input string) Outcome
	// Feedback describes the last submission, empty before the first one.
	Feedback() string
}

// New builds a challenge for kind with content picked by rng.
func New(kind gamestate.TaskKind, rng *core.RNG) (Challenge, error) {
	switch kind {
	case gamestate.TaskNotebook:
		return newNotebook(rng), nil
	case gamestate.TaskCalculator:
		return newCalculator(rng), nil
	case gamestate.TaskTextbook:
		return newTextbook(rng), nil
	case gamestate.TaskMemory:
		return newMemory(rng), nil
	case gamestate.TaskNotes:
		return newNotes(rng), nil
	default:
		return nil, fmt.Errorf("minigame: unknown task kind %q", kind)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func pick[T any](rng *core.RNG, items []T) T {
	return items[rng.Intn(len(items))]
}
