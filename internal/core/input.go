package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow - move up
	ActionDown              // S, Down arrow - move down
	ActionLeft              // A, Left arrow - move left
	ActionRight             // D, Right arrow - move right
	ActionConfirm           // Enter - confirm selection, dismiss dialogs
	ActionBack              // Escape - dismiss dialogs, go back to menu
	ActionRestart           // R key - restart on the same board
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause game
	ActionNewBoard          // N key - randomize the board
	ActionResize            // G key - cycle the board size
	ActionPathColor         // C key - cycle the path color
	ActionBoardColor        // V key - cycle the board color
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionNewBoard:
		return "NewBoard"
	case ActionResize:
		return "Resize"
	case ActionPathColor:
		return "PathColor"
	case ActionBoardColor:
		return "BoardColor"
	default:
		return "Unknown"
	}
}

// Click is a pointer press in screen coordinates.
type Click struct {
	X, Y int
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Presses holds every action in arrival order, repeats included.
	Presses []Action

	// Clicks holds pointer presses in arrival order.
	Clicks []Click

	// Delta is the wall time since the previous frame, zero when unknown.
	Delta time.Duration
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
	f.Presses = append(f.Presses, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddClick records a pointer press at screen position (x, y).
func (f *InputFrame) AddClick(x, y int) {
	f.Clicks = append(f.Clicks, Click{X: x, Y: y})
}

// Empty reports whether the frame carries no input.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Clicks) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Presses = f.Presses[:0]
	f.Clicks = f.Clicks[:0]
	f.Delta = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Presses) > 0 {
		clone.Presses = append([]Action(nil), f.Presses...)
	}
	if len(f.Clicks) > 0 {
		clone.Clicks = append([]Click(nil), f.Clicks...)
	}
	clone.Delta = f.Delta
	return clone
}
