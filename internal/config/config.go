// Package config provides YAML-based game configuration loading and
// environment-based settings for the remote score API.
package config

import (
	"errors"
	"fmt"
)

// NeonFlipConfig contains all tunable constants of the simulation.
type NeonFlipConfig struct {
	Physics   Physics   `yaml:"physics"`
	Obstacles Obstacles `yaml:"obstacles"`
	Player    Player    `yaml:"player"`
	Timing    Timing    `yaml:"timing"`
	Render    Render    `yaml:"render"`
}

// Physics defines gravity and flip parameters.
type Physics struct {
	Gravity      float32 `yaml:"gravity"`        // Acceleration per tick
	JumpForce    float32 `yaml:"jump_force"`     // Velocity set on flip, towards the new gravity
	MaxFallSpeed float32 `yaml:"max_fall_speed"` // Symmetric velocity cap
}

// Obstacles defines obstacle pair generation and movement.
type Obstacles struct {
	Speed           float32 `yaml:"speed"`
	Width           float32 `yaml:"width"`
	Gap             float32 `yaml:"gap"`
	MinHeight       float32 `yaml:"min_height"`
	SpawnIntervalMs int     `yaml:"spawn_interval_ms"`
}

// Player defines the player body.
type Player struct {
	Size   float32 `yaml:"size"`
	XRatio float32 `yaml:"x_ratio"` // Fixed x as a fraction of world width
}

// Timing defines the tick clock.
type Timing struct {
	TickRate int `yaml:"tick_rate"` // Ticks per second
	TickMs   int `yaml:"tick_ms"`   // Nominal step used to convert spawn interval to distance
}

// Render defines how world units map to terminal cells.
type Render struct {
	CellWidth  float32 `yaml:"cell_width"`
	CellHeight float32 `yaml:"cell_height"`
}

// ErrWorldTooSmall is returned when the world cannot hold an obstacle pair
// with both segments at least MinHeight tall.
var ErrWorldTooSmall = errors.New("config: world too small for obstacle gap")

// SpawnDistance returns how far the newest obstacle must travel from the
// right edge before the next pair spawns.
func (c NeonFlipConfig) SpawnDistance() float32 {
	return float32(c.Obstacles.SpawnIntervalMs) / float32(c.Timing.TickMs) * c.Obstacles.Speed
}

// MinWorldHeight returns the smallest world height that keeps both obstacle
// segments at least MinHeight tall.
func (c NeonFlipConfig) MinWorldHeight() float32 {
	return c.Obstacles.Gap + 2*c.Obstacles.MinHeight
}

// Validate checks that all constants are usable.
func (c NeonFlipConfig) Validate() error {
	positive := []struct {
		name string
		v    float32
	}{
		{"physics.gravity", c.Physics.Gravity},
		{"physics.jump_force", c.Physics.JumpForce},
		{"physics.max_fall_speed", c.Physics.MaxFallSpeed},
		{"obstacles.speed", c.Obstacles.Speed},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.gap", c.Obstacles.Gap},
		{"obstacles.min_height", c.Obstacles.MinHeight},
		{"player.size", c.Player.Size},
		{"render.cell_width", c.Render.CellWidth},
		{"render.cell_height", c.Render.CellHeight},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", p.name, p.v)
		}
	}
	if c.Obstacles.SpawnIntervalMs <= 0 {
		return fmt.Errorf("config: obstacles.spawn_interval_ms must be positive, got %d", c.Obstacles.SpawnIntervalMs)
	}
	if c.Timing.TickRate <= 0 || c.Timing.TickMs <= 0 {
		return fmt.Errorf("config: timing values must be positive, got rate=%d ms=%d", c.Timing.TickRate, c.Timing.TickMs)
	}
	if c.Player.XRatio < 0 || c.Player.XRatio >= 1 {
		return fmt.Errorf("config: player.x_ratio must be in [0, 1), got %v", c.Player.XRatio)
	}
	return nil
}

// ValidateWorld checks that a world of the given size can be simulated.
func (c NeonFlipConfig) ValidateWorld(width, height float32) error {
	if width <= 0 {
		return fmt.Errorf("config: world width must be positive, got %v", width)
	}
	if height < c.MinWorldHeight() || height < c.Player.Size {
		return fmt.Errorf("%w: height %v, need at least %v", ErrWorldTooSmall, height, c.MinWorldHeight())
	}
	return nil
}
