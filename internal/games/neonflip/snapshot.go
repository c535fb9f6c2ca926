package neonflip

import "slices"

// State is the session state machine position.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameUpdate is the immutable result of a tick. It is the only view of the
// simulation that renderers and score submission get; Obstacles is a private
// copy owned by the snapshot.
type GameUpdate struct {
	Player     Player
	Obstacles  []Obstacle
	Score      int
	HighScore  int
	IsGameOver bool
	Gravity    Gravity
	State      State
	Tick       int
}

func newUpdate(e *Engine) GameUpdate {
	return GameUpdate{
		Player:     e.player,
		Obstacles:  slices.Clone(e.obstacles),
		Score:      e.score,
		HighScore:  e.highScore,
		IsGameOver: e.state == StateGameOver,
		Gravity:    e.gravity,
		State:      e.state,
		Tick:       e.tick,
	}
}
