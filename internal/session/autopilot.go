package session

import "github.com/vovakirdan/neonflip/internal/games/neonflip"

// Autopilot decides when to flip so the player follows the next gap.
// It is used for headless simulation runs.
type Autopilot struct {
	Gap    float32 // Obstacle gap height
	Margin float32 // Dead zone around the gap center before flipping
}

// ShouldFlip reports whether gravity should be reversed for snapshot u.
// With no obstacle ahead the target is the middle of the world.
func (a Autopilot) ShouldFlip(u neonflip.GameUpdate, worldH float32) bool {
	if u.State != neonflip.StatePlaying {
		return false
	}

	target := worldH / 2
	for _, o := range u.Obstacles {
		// The top segment of the nearest pair not yet behind the player
		if o.Y == 0 && o.Right() >= u.Player.X {
			target = o.Height + a.Gap/2
			break
		}
	}

	center := u.Player.Y + u.Player.Size/2
	switch u.Gravity {
	case neonflip.GravityDown:
		return center > target+a.Margin
	default:
		return center < target-a.Margin
	}
}
