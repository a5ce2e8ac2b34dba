// Package tui is the Bubble Tea front end for deadline: the game model,
// the challenge modal, the variant menu, the scoreboard and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation step. It carries the wall time so the
// model can measure the real delta between frames.
type TickMsg struct {
	At time.Time
	// loop identifies the GameModel that scheduled the tick. Ticks left over
	// from a previous game are dropped instead of doubling the frame rate.
	loop uint64
}

var loopSeq atomic.Uint64

func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd schedules the next TickMsg for loop at the given rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, loop: loop}
	})
}
