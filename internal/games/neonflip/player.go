package neonflip

import (
	"github.com/vovakirdan/neonflip/internal/config"
	"github.com/vovakirdan/neonflip/internal/core"
)

// Gravity is the direction of the constant acceleration applied to the player.
type Gravity int

const (
	GravityDown Gravity = iota
	GravityUp
)

// String returns a human-readable name for the gravity direction.
func (g Gravity) String() string {
	if g == GravityUp {
		return "Up"
	}
	return "Down"
}

// Flipped returns the opposite gravity direction.
func (g Gravity) Flipped() Gravity {
	if g == GravityUp {
		return GravityDown
	}
	return GravityUp
}

// Player is the square body controlled by the gravity flip.
// X never changes after the session starts.
type Player struct {
	X         float32
	Y         float32
	Size      float32
	VelocityY float32
}

// NewPlayer places a player at rest, x at the configured fraction of the
// world width and vertically centered.
func NewPlayer(cfg config.Player, worldW, worldH float32) Player {
	return Player{
		X:    worldW * cfg.XRatio,
		Y:    worldH / 2,
		Size: cfg.Size,
	}
}

// Box returns the player's collision box.
func (p Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.Size, p.Size)
}

// Integrate advances the player by one tick under the given gravity.
// Velocity is capped at MaxFallSpeed in both directions. Position is clamped
// to the world; velocity is left untouched at a boundary so it keeps
// evolving under gravity on the next tick.
func Integrate(p Player, g Gravity, phys config.Physics, worldH float32) Player {
	switch g {
	case GravityDown:
		p.VelocityY = min(p.VelocityY+phys.Gravity, phys.MaxFallSpeed)
	case GravityUp:
		p.VelocityY = max(p.VelocityY-phys.Gravity, -phys.MaxFallSpeed)
	}

	p.Y = core.ClampF32(p.Y+p.VelocityY, 0, worldH-p.Size)
	return p
}

// FlipImpulse returns the velocity applied right after gravity becomes g:
// JumpForce pointing along the new gravity, replacing any accumulated speed.
func FlipImpulse(g Gravity, phys config.Physics) float32 {
	if g == GravityUp {
		return -phys.JumpForce
	}
	return phys.JumpForce
}
