// Package neonflip implements the Neon Flip simulation: a square travels at a
// fixed horizontal position while obstacle pairs scroll past, gravity pulls it
// up or down, and a flip reverses gravity.
package neonflip

import (
	"fmt"

	"github.com/vovakirdan/neonflip/internal/config"
)

// ID is the game identifier used for score storage.
const ID = "neonflip"

// Title is the display name.
const Title = "Neon Flip"

// Engine is the fixed-step simulation and its session state machine.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	cfg     config.NeonFlipConfig
	worldW  float32
	worldH  float32
	nextW   float32 // Applied by the next Start
	nextH   float32
	spawner *Spawner

	player    Player
	obstacles []Obstacle
	gravity   Gravity
	state     State
	score     int
	highScore int
	tick      int
}

// NewEngine creates an engine in the Menu state for a world of the given size.
func NewEngine(cfg config.NeonFlipConfig, worldW, worldH float32, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateWorld(worldW, worldH); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		worldW:  worldW,
		worldH:  worldH,
		nextW:   worldW,
		nextH:   worldH,
		spawner: NewSpawner(seed, cfg, worldW, worldH),
		state:   StateMenu,
	}
	e.player = NewPlayer(cfg.Player, worldW, worldH)
	return e, nil
}

// Resize changes the world dimensions. The new size applies from the next Start.
func (e *Engine) Resize(worldW, worldH float32) error {
	if err := e.cfg.ValidateWorld(worldW, worldH); err != nil {
		return fmt.Errorf("neonflip: resize: %w", err)
	}
	e.nextW = worldW
	e.nextH = worldH
	return nil
}

// Reseed resets the obstacle RNG.
func (e *Engine) Reseed(seed int64) {
	e.spawner.Reseed(seed)
}

// Start begins a fresh session from any state.
func (e *Engine) Start() {
	e.worldW, e.worldH = e.nextW, e.nextH
	e.spawner.Resize(e.worldW, e.worldH)
	e.player = NewPlayer(e.cfg.Player, e.worldW, e.worldH)
	e.obstacles = nil
	e.gravity = GravityDown
	e.score = 0
	e.tick = 0
	e.state = StatePlaying
}

// Flip reverses gravity and applies the flip impulse.
// Returns false (and changes nothing) unless the session is playing.
func (e *Engine) Flip() bool {
	if e.state != StatePlaying {
		return false
	}
	e.gravity = e.gravity.Flipped()
	e.player.VelocityY = FlipImpulse(e.gravity, e.cfg.Physics)
	return true
}

// Pause suspends a playing session.
func (e *Engine) Pause() bool {
	if e.state != StatePlaying {
		return false
	}
	e.state = StatePaused
	return true
}

// Resume continues a paused session exactly where it stopped.
// It is a no-op after game over.
func (e *Engine) Resume() bool {
	if e.state != StatePaused {
		return false
	}
	e.state = StatePlaying
	return true
}

// Update advances the simulation by one tick and returns the snapshot.
// Outside the Playing state nothing changes.
//
// The tick is computed into locals and committed at the end, so the engine
// either moves to the next consistent state or keeps the previous one.
func (e *Engine) Update() GameUpdate {
	if e.state != StatePlaying {
		return e.Snapshot()
	}

	player := Integrate(e.player, e.gravity, e.cfg.Physics, e.worldH)

	obstacles := e.spawner.Advance(e.obstacles)
	if e.spawner.ShouldSpawn(obstacles) {
		pair := e.spawner.Spawn()
		obstacles = append(obstacles, pair[:]...)
	}

	score := e.score
	for i := range obstacles {
		if !obstacles[i].Passed && obstacles[i].Right() < player.X {
			obstacles[i].Passed = true
			score++
		}
	}

	hit := false
	pb := player.Box()
	for _, o := range obstacles {
		if pb.Intersects(o.Box()) {
			hit = true
			break
		}
	}

	e.player = player
	e.obstacles = obstacles
	e.score = score
	e.tick++
	if hit {
		e.state = StateGameOver
		if e.score > e.highScore {
			e.highScore = e.score
		}
	}

	return e.Snapshot()
}

// Snapshot returns the current state without advancing.
func (e *Engine) Snapshot() GameUpdate {
	return newUpdate(e)
}

// State returns the current state machine position.
func (e *Engine) State() State {
	return e.state
}

// Score returns the current session score.
func (e *Engine) Score() int {
	return e.score
}

// HighScore returns the best score seen by this engine.
func (e *Engine) HighScore() int {
	return e.highScore
}

// SetHighScore seeds the high score, e.g. from persistent storage.
// Lower values are ignored.
func (e *Engine) SetHighScore(score int) {
	if score > e.highScore {
		e.highScore = score
	}
}

// World returns the world dimensions of the current session.
func (e *Engine) World() (width, height float32) {
	return e.worldW, e.worldH
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.NeonFlipConfig {
	return e.cfg
}
