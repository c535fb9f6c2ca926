package session

import (
	"testing"

	"github.com/vovakirdan/neonflip/internal/games/neonflip"
)

func TestAutopilotShouldFlip(t *testing.T) {
	ap := Autopilot{Gap: 200, Margin: 20}
	// Gap spans 300..500, center 400
	obstacles := []neonflip.Obstacle{
		{X: 10, Y: 0, Width: 60, Height: 100}, // behind the player
		{X: 10, Y: 300, Width: 60, Height: 500},
		{X: 200, Y: 0, Width: 60, Height: 300},
		{X: 200, Y: 500, Width: 60, Height: 300},
	}

	tests := []struct {
		name     string
		y        float32
		gravity  neonflip.Gravity
		expected bool
	}{
		{"falling below the gap", 420, neonflip.GravityDown, true},
		{"falling inside dead zone", 380, neonflip.GravityDown, false},
		{"rising above the gap", 300, neonflip.GravityUp, true},
		{"rising inside dead zone", 360, neonflip.GravityUp, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := neonflip.GameUpdate{
				Player:    neonflip.Player{X: 80, Y: tc.y, Size: 50},
				Obstacles: obstacles,
				Gravity:   tc.gravity,
				State:     neonflip.StatePlaying,
			}
			if got := ap.ShouldFlip(u, 800); got != tc.expected {
				t.Errorf("ShouldFlip() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAutopilotIgnoresInactiveGame(t *testing.T) {
	ap := Autopilot{Gap: 200}
	u := neonflip.GameUpdate{
		Player: neonflip.Player{Y: 700, Size: 50},
		State:  neonflip.StateGameOver,
	}
	if ap.ShouldFlip(u, 800) {
		t.Error("autopilot should not flip outside play")
	}
}
