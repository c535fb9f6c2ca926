package core

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionFlip           // Space, W, Up - reverse gravity
	ActionPause          // P, Escape - pause/resume
	ActionRestart        // R, Enter - start a new session after game over
	ActionBack           // B - back to menu
	ActionQuit           // Q, Ctrl+C - exit
	ActionUp             // menu navigation
	ActionDown           // menu navigation
	ActionConfirm        // menu selection
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlip:
		return "Flip"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}
