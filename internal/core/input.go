package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left arrow, A, H - shift piece left
	ActionRight           // Right arrow, D, L - shift piece right
	ActionSoftDrop        // Down arrow, S, J, Space - move piece down one row
	ActionRotate          // Up arrow, W, K, X - rotate clockwise
	ActionRestart         // R key - restart game after game over
	ActionPause           // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotate:
		return "Rotate"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame collects the discrete actions received during one simulation tick.
// Every key press is recorded once, in arrival order, so two presses of the
// same key within a tick are applied twice.
type InputFrame struct {
	Events []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Events = append(f.Events, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, e := range f.Events {
		if e == a {
			return true
		}
	}
	return false
}

// Len returns the number of recorded actions.
func (f InputFrame) Len() int {
	return len(f.Events)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Events: make([]Action, len(f.Events))}
	copy(clone.Events, f.Events)
	return clone
}
