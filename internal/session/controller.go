// Package session drives a Neon Flip engine for a host: it serializes input
// with ticks, publishes snapshots, and hands the final score of every game to
// a score submitter without blocking play.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/neonflip/internal/games/neonflip"
	"github.com/vovakirdan/neonflip/internal/scores"
)

// DefaultSubmitTimeout bounds a single score submission.
const DefaultSubmitTimeout = 5 * time.Second

// ErrClosed is recorded for submissions attempted after Close.
var ErrClosed = errors.New("session: closed")

// Engine is the simulation a controller drives. *neonflip.Engine implements it.
type Engine interface {
	Start()
	Flip() bool
	Pause() bool
	Resume() bool
	Update() neonflip.GameUpdate
	Snapshot() neonflip.GameUpdate
	SetHighScore(score int)
	Resize(worldW, worldH float32) error
	World() (worldW, worldH float32)
}

var _ Engine = (*neonflip.Engine)(nil)

// Options configures a Controller.
type Options struct {
	// ID identifies the session in logs and storage. Generated if empty.
	ID string

	// Submitter receives the final score of each game. May be nil.
	Submitter scores.Submitter

	// SubmitTimeout bounds each submission. Defaults to DefaultSubmitTimeout.
	SubmitTimeout time.Duration

	// TickRate is the Run loop frequency in Hz. Defaults to 60.
	TickRate int

	Logger *log.Logger
}

// Submission is the outcome of the last score submission.
type Submission struct {
	Score  int
	Result scores.Result
	Err    error
}

// Controller owns an engine and is safe for concurrent use. Input methods and
// ticks are serialized by one mutex, so input always lands between ticks.
type Controller struct {
	id       string
	tickRate int
	timeout  time.Duration
	logger   *log.Logger
	submit   scores.Submitter

	mu     sync.Mutex
	engine Engine
	closed bool

	snap atomic.Pointer[neonflip.GameUpdate]
	last atomic.Pointer[Submission]

	subMu sync.Mutex
	subs  map[<-chan neonflip.GameUpdate]chan neonflip.GameUpdate

	wg sync.WaitGroup
}

// New creates a controller around engine.
func New(engine Engine, opts Options) *Controller {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = DefaultSubmitTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	c := &Controller{
		id:       opts.ID,
		tickRate: opts.TickRate,
		timeout:  opts.SubmitTimeout,
		logger:   opts.Logger.With("session", opts.ID),
		engine:   engine,
		subs:     make(map[<-chan neonflip.GameUpdate]chan neonflip.GameUpdate),
	}
	if opts.Submitter != nil {
		c.submit = scores.Guard(opts.Submitter)
	}

	u := engine.Snapshot()
	c.snap.Store(&u)
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// Start begins a new game from any state.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.engine.Start()
	c.publish(c.engine.Snapshot())
	c.logger.Debug("game started")
}

// Flip reverses gravity. Ignored unless a game is being played.
func (c *Controller) Flip() bool {
	return c.apply(c.engine.Flip)
}

// Pause suspends ticking.
func (c *Controller) Pause() bool {
	return c.apply(c.engine.Pause)
}

// Resume continues a paused game. Ignored after game over.
func (c *Controller) Resume() bool {
	return c.apply(c.engine.Resume)
}

// TogglePause pauses a running game or resumes a paused one.
func (c *Controller) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok := c.engine.Pause() || c.engine.Resume()
	if ok {
		c.publish(c.engine.Snapshot())
	}
	return ok
}

func (c *Controller) apply(op func() bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !op() {
		return false
	}
	c.publish(c.engine.Snapshot())
	return true
}

// Resize sets the world size used by the next game.
func (c *Controller) Resize(worldW, worldH float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Resize(worldW, worldH)
}

// World returns the world size of the current game.
func (c *Controller) World() (worldW, worldH float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.World()
}

// Step advances the engine by one tick and returns the published snapshot.
// A panic inside the tick is logged and the previous snapshot is returned.
func (c *Controller) Step() (u neonflip.GameUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("tick panicked", "panic", r)
			u = *c.snap.Load()
		}
	}()

	prev := c.snap.Load().State
	u = c.engine.Update()
	c.publish(u)

	if prev == neonflip.StatePlaying && u.State == neonflip.StateGameOver {
		c.logger.Info("game over", "score", u.Score, "tick", u.Tick)
		c.submitLocked(u.Score)
	}
	return u
}

// Run ticks the engine at the configured rate until ctx is done. Ticks that
// fire while the game is not playing are dropped, not queued.
func (c *Controller) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(c.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if c.IsPlaying() {
				c.Step()
			}
		}
	}
}

// Snapshot returns the latest published snapshot.
func (c *Controller) Snapshot() neonflip.GameUpdate {
	return *c.snap.Load()
}

// State returns the state of the latest snapshot.
func (c *Controller) State() neonflip.State {
	return c.snap.Load().State
}

// Score returns the current game's score.
func (c *Controller) Score() int {
	return c.snap.Load().Score
}

// HighScore returns the best known score.
func (c *Controller) HighScore() int {
	return c.snap.Load().HighScore
}

// IsGameOver reports whether the last game ended in a collision.
func (c *Controller) IsGameOver() bool {
	return c.snap.Load().IsGameOver
}

// IsPlaying reports whether ticks currently advance the game.
func (c *Controller) IsPlaying() bool {
	return c.snap.Load().State == neonflip.StatePlaying
}

// IsPaused reports whether the game is paused.
func (c *Controller) IsPaused() bool {
	return c.snap.Load().State == neonflip.StatePaused
}

// LastSubmission returns the outcome of the most recent finished submission.
func (c *Controller) LastSubmission() (Submission, bool) {
	s := c.last.Load()
	if s == nil {
		return Submission{}, false
	}
	return *s, true
}

// Subscribe returns a channel that receives every published snapshot.
// Snapshots are dropped for a subscriber whose buffer is full.
func (c *Controller) Subscribe(buffer int) <-chan neonflip.GameUpdate {
	ch := make(chan neonflip.GameUpdate, max(buffer, 1))

	c.subMu.Lock()
	c.subs[ch] = ch
	c.subMu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (c *Controller) Unsubscribe(ch <-chan neonflip.GameUpdate) {
	c.subMu.Lock()
	if send, ok := c.subs[ch]; ok {
		delete(c.subs, ch)
		close(send)
	}
	c.subMu.Unlock()
}

// Close waits for in-flight submissions and closes all subscriber channels.
// Games that end after Close are not submitted.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()

	c.subMu.Lock()
	for recv, send := range c.subs {
		delete(c.subs, recv)
		close(send)
	}
	c.subMu.Unlock()
	return nil
}

// publish stores u as the latest snapshot and fans it out. Callers hold mu.
func (c *Controller) publish(u neonflip.GameUpdate) {
	c.snap.Store(&u)

	c.subMu.Lock()
	for _, ch := range c.subs {
		select {
		case ch <- u:
		default:
		}
	}
	c.subMu.Unlock()
}

// submitLocked hands score to the submitter on its own goroutine.
// Callers hold mu.
func (c *Controller) submitLocked(score int) {
	if c.submit == nil {
		return
	}
	if c.closed {
		c.last.Store(&Submission{Score: score, Err: ErrClosed})
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.runSubmission(score)
	}()
}

func (c *Controller) runSubmission(score int) {
	sub := Submission{Score: score}
	defer func() {
		if r := recover(); r != nil {
			sub.Err = fmt.Errorf("session: submitter panicked: %v", r)
			c.logger.Error("score submission panicked", "score", score, "panic", r)
		}
		c.last.Store(&sub)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	start := time.Now()
	sub.Result, sub.Err = c.submit.SubmitScore(ctx, score)
	if sub.Err != nil {
		c.logger.Warn("score submission failed", "score", score, "error", sub.Err)
		return
	}

	c.logger.Info("score submitted",
		"score", score,
		"high", sub.Result.HighScore,
		"new_high", sub.Result.NewHighScore,
		"took", time.Since(start),
	)

	c.mu.Lock()
	c.engine.SetHighScore(sub.Result.HighScore)
	c.publish(c.engine.Snapshot())
	c.mu.Unlock()
}
