package gamestate

import "time"

// Phase is the top-level state of a run.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends a run.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// LossReason records why a run was lost. Empty for anything but PhaseLost.
type LossReason string

const (
	ReasonNone       LossReason = ""
	ReasonDepleted   LossReason = "depleted"
	ReasonTimeUp     LossReason = "time_up"
	ReasonRoomClosed LossReason = "room_closed"
	ReasonAbandoned  LossReason = "abandoned"
)

// Transition is delivered to listeners after every phase change.
type Transition struct {
	From   Phase
	To     Phase
	Reason LossReason
	RunID  string
	At     time.Time
	// CapturePointer asks the presentation layer to take exclusive input focus.
	CapturePointer bool
}
