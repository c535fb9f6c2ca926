package neonflip

import (
	"math/rand"

	"github.com/vovakirdan/neonflip/internal/config"
	"github.com/vovakirdan/neonflip/internal/core"
)

// Obstacle is one segment of an obstacle pair.
type Obstacle struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
	Passed bool // Set once the player has cleared this obstacle (for scoring)
}

// Box returns the obstacle's collision box.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.Width, o.Height)
}

// Right returns the x-coordinate of the trailing edge.
func (o Obstacle) Right() float32 {
	return o.X + o.Width
}

// Spawner generates obstacle pairs at the right edge of the world and moves
// them left. It never mutates a slice it was given.
type Spawner struct {
	rng           *rand.Rand
	cfg           config.Obstacles
	spawnDistance float32
	worldW        float32
	worldH        float32
}

// NewSpawner creates a spawner for a world of the given size.
func NewSpawner(seed int64, cfg config.NeonFlipConfig, worldW, worldH float32) *Spawner {
	return &Spawner{
		rng:           rand.New(rand.NewSource(seed)),
		cfg:           cfg.Obstacles,
		spawnDistance: cfg.SpawnDistance(),
		worldW:        worldW,
		worldH:        worldH,
	}
}

// Reseed resets the random source used for gap placement.
func (s *Spawner) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Resize changes the world dimensions used for new pairs.
func (s *Spawner) Resize(worldW, worldH float32) {
	s.worldW = worldW
	s.worldH = worldH
}

// ShouldSpawn reports whether a new pair is due: the collection is empty or
// the newest obstacle has moved more than the spawn distance from the right edge.
func (s *Spawner) ShouldSpawn(obstacles []Obstacle) bool {
	if len(obstacles) == 0 {
		return true
	}
	return obstacles[len(obstacles)-1].X < s.worldW-s.spawnDistance
}

// GapY samples the top of the gap uniformly from
// [MinHeight, worldH - Gap - MinHeight].
func (s *Spawner) GapY() float32 {
	span := s.worldH - s.cfg.Gap - 2*s.cfg.MinHeight
	if span <= 0 {
		return s.cfg.MinHeight // Worlds are validated; this only covers the exact minimum
	}
	return s.cfg.MinHeight + s.rng.Float32()*span
}

// Spawn creates a top/bottom pair at the right edge of the world.
func (s *Spawner) Spawn() [2]Obstacle {
	return s.PairAt(s.GapY())
}

// PairAt builds the pair for a given gap position.
func (s *Spawner) PairAt(gapY float32) [2]Obstacle {
	bottomY := gapY + s.cfg.Gap
	return [2]Obstacle{
		{X: s.worldW, Y: 0, Width: s.cfg.Width, Height: gapY},
		{X: s.worldW, Y: bottomY, Width: s.cfg.Width, Height: s.worldH - bottomY},
	}
}

// Advance moves every obstacle left by the configured speed and drops the
// ones fully past the left edge. The result is a new slice.
func (s *Spawner) Advance(obstacles []Obstacle) []Obstacle {
	next := make([]Obstacle, 0, len(obstacles)+2)
	for _, o := range obstacles {
		o.X -= s.cfg.Speed
		if o.Right() < 0 {
			continue
		}
		next = append(next, o)
	}
	return next
}
