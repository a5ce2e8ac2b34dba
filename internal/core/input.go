package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow - move toward the back wall (-Z)
	ActionDown            // S, Down arrow - move toward the door (+Z)
	ActionLeft            // A, Left arrow - strafe left (-X)
	ActionRight           // D, Right arrow - strafe right (+X)
	ActionJump            // Space
	ActionInteract        // E - use a task station
	ActionConfirm         // Enter - start a run from the title screen
	ActionCancel          // Escape - abandon the open challenge
	ActionBack            // B - back to menu
	ActionRestart         // R - restart after game over
	ActionQuit            // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:     "None",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionJump:     "Jump",
	ActionInteract: "Interact",
	ActionConfirm:  "Confirm",
	ActionCancel:   "Cancel",
	ActionBack:     "Back",
	ActionRestart:  "Restart",
	ActionQuit:     "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame represents the input state of the player during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Axis returns the movement direction encoded in the frame as (x, z) in {-1,0,1}.
// Opposing keys cancel out.
func (f InputFrame) Axis() (x, z float64) {
	if f.Has(ActionLeft) {
		x--
	}
	if f.Has(ActionRight) {
		x++
	}
	if f.Has(ActionUp) {
		z--
	}
	if f.Has(ActionDown) {
		z++
	}
	return x, z
}

// HeldInput emulates key holds on terminals that only report presses.
// A press keeps its action active for a fixed number of ticks, and
// repeated presses (terminal auto-repeat) refresh the window.
type HeldInput struct {
	holdTicks int
	remaining map[Action]int
}

// NewHeldInput creates a hold tracker that keeps actions alive for holdTicks ticks.
func NewHeldInput(holdTicks int) *HeldInput {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &HeldInput{
		holdTicks: holdTicks,
		remaining: make(map[Action]int),
	}
}

// Press starts or refreshes the hold window for an action.
// Pressing a direction releases its opposite immediately.
func (h *HeldInput) Press(a Action) {
	if opp, ok := opposite[a]; ok {
		delete(h.remaining, opp)
	}
	h.remaining[a] = h.holdTicks
}

// Apply sets every held action on the frame and ages the hold windows by one tick.
func (h *HeldInput) Apply(f *InputFrame) {
	for a, n := range h.remaining {
		f.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
}

// Release drops every held action.
func (h *HeldInput) Release() {
	clear(h.remaining)
}

var opposite = map[Action]Action{
	ActionUp:    ActionDown,
	ActionDown:  ActionUp,
	ActionLeft:  ActionRight,
	ActionRight: ActionLeft,
}
