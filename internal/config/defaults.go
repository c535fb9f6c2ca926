package config

import (
	_ "embed"
)

//go:embed defaults/neonflip.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in Neon Flip configuration.
func DefaultConfig() NeonFlipConfig {
	return NeonFlipConfig{
		Physics: Physics{
			Gravity:      0.5,
			JumpForce:    8,
			MaxFallSpeed: 15,
		},
		Obstacles: Obstacles{
			Speed:           5,
			Width:           60,
			Gap:             200,
			MinHeight:       100,
			SpawnIntervalMs: 1500,
		},
		Player: Player{
			Size:   50,
			XRatio: 0.2,
		},
		Timing: Timing{
			TickRate: 60,
			TickMs:   16,
		},
		Render: Render{
			CellWidth:  10,
			CellHeight: 20,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
