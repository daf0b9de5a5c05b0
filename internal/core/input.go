package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // Left, H - shift piece left
	ActionMoveRight        // Right, L - shift piece right
	ActionSoftDrop         // Down, J - accelerate the fall
	ActionHardDrop         // Space - drop and lock immediately
	ActionRotateCW         // Up, X, K - rotate clockwise
	ActionRotateCCW        // Z - rotate counter-clockwise
	ActionRotate180        // A - rotate half a turn
	ActionHold             // C - swap with the hold slot
	ActionPause            // P, Escape - pause/unpause game
	ActionRestart          // R - restart after the session ended
	ActionQuit             // Q, Ctrl+C - exit game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionRotate180:
		return "Rotate180"
	case ActionHold:
		return "Hold"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputEvent is a single press or release of an action, in arrival order.
type InputEvent struct {
	Action   Action
	Released bool
}

// InputFrame holds the input collected during one simulation tick.
// Events keeps press/release order so held-key semantics survive batching;
// Actions answers "was this pressed during the tick" without scanning.
type InputFrame struct {
	Actions map[Action]bool
	Events  []InputEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set records a press of the action.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Events = append(f.Events, InputEvent{Action: a})
}

// Release records the release of a held action.
func (f *InputFrame) Release(a Action) {
	f.Events = append(f.Events, InputEvent{Action: a, Released: true})
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions and events for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Events = f.Events[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Events) > 0 {
		clone.Events = append([]InputEvent(nil), f.Events...)
	}
	return clone
}
