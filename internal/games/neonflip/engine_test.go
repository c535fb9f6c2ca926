package neonflip

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/neonflip/internal/config"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(config.DefaultConfig(), 400, 800, 1)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	return e
}

func TestNewEngineStartsInMenu(t *testing.T) {
	e := newTestEngine(t)

	u := e.Update()
	if u.State != StateMenu {
		t.Errorf("State = %v, expected Menu", u.State)
	}
	if u.Tick != 0 || len(u.Obstacles) != 0 {
		t.Errorf("Update in Menu should not advance: %+v", u)
	}
	if e.Flip() {
		t.Error("Flip in Menu should be ignored")
	}
}

func TestNewEngineRejectsSmallWorld(t *testing.T) {
	_, err := NewEngine(config.DefaultConfig(), 400, 399, 1)
	if !errors.Is(err, config.ErrWorldTooSmall) {
		t.Errorf("NewEngine(400x399) error = %v, expected ErrWorldTooSmall", err)
	}
}

func TestStartResetsSession(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	e.Flip()
	for i := 0; i < 10; i++ {
		e.Update()
	}

	e.Start()
	u := e.Snapshot()

	if u.State != StatePlaying {
		t.Errorf("State = %v, expected Playing", u.State)
	}
	if u.Gravity != GravityDown {
		t.Errorf("Gravity = %v, expected Down", u.Gravity)
	}
	if u.Score != 0 || u.Tick != 0 || len(u.Obstacles) != 0 {
		t.Errorf("session not reset: %+v", u)
	}
	if u.Player.Y != 400 || u.Player.VelocityY != 0 || u.Player.X != 80 {
		t.Errorf("player not reset: %+v", u.Player)
	}
}

func TestFirstTickSpawnsPair(t *testing.T) {
	e := newTestEngine(t)
	e.Start()

	u := e.Update()
	if len(u.Obstacles) != 2 {
		t.Fatalf("expected a pair after the first tick, got %d obstacles", len(u.Obstacles))
	}
	if u.Obstacles[0].X != 400 || u.Obstacles[1].X != 400 {
		t.Errorf("pair should spawn at the right edge, got %v/%v", u.Obstacles[0].X, u.Obstacles[1].X)
	}
}

func TestFlipFromRest(t *testing.T) {
	e := newTestEngine(t)
	e.Start()

	if !e.Flip() {
		t.Fatal("Flip while playing should be accepted")
	}
	u := e.Snapshot()
	if u.Gravity != GravityUp {
		t.Errorf("Gravity = %v, expected Up", u.Gravity)
	}
	if u.Player.VelocityY != -8 {
		t.Errorf("VelocityY = %v, expected -8", u.Player.VelocityY)
	}

	u = e.Update()
	if u.Player.VelocityY != -8.5 {
		t.Errorf("VelocityY after tick = %v, expected -8.5", u.Player.VelocityY)
	}
	if u.Player.Y != 391.5 {
		t.Errorf("Y after tick = %v, expected 391.5", u.Player.Y)
	}
}

func TestFallsSixteenTicks(t *testing.T) {
	e := newTestEngine(t)
	e.Start()

	var u GameUpdate
	for i := 0; i < 16; i++ {
		u = e.Update()
	}
	if u.Player.VelocityY != 8 || u.Player.Y != 468 {
		t.Errorf("after 16 ticks v=%v y=%v, expected v=8 y=468", u.Player.VelocityY, u.Player.Y)
	}
}

func TestPlayerStaysInWorld(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for run := 0; run < 20; run++ {
		e := newTestEngine(t)
		e.Reseed(int64(run))
		e.Start()

		for i := 0; i < 2000 && e.State() == StatePlaying; i++ {
			if rng.Intn(12) == 0 {
				e.Flip()
			}
			u := e.Update()
			if u.Player.Y < 0 || u.Player.Y > 750 {
				t.Fatalf("run %d tick %d: Y = %v out of [0, 750]", run, u.Tick, u.Player.Y)
			}
			if u.Player.VelocityY > 15 || u.Player.VelocityY < -15 {
				t.Fatalf("run %d tick %d: VelocityY = %v over the cap", run, u.Tick, u.Player.VelocityY)
			}
			if u.Player.X != 80 {
				t.Fatalf("run %d tick %d: X moved to %v", run, u.Tick, u.Player.X)
			}
		}
	}
}

func TestPassScoredOnce(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	e.obstacles = []Obstacle{
		{X: 20, Y: 0, Width: 60, Height: 300},
		{X: 20, Y: 500, Width: 60, Height: 300},
	}

	u := e.Update()
	if u.Score != 2 {
		t.Fatalf("Score = %d, expected 2 after clearing the pair", u.Score)
	}
	for _, o := range u.Obstacles {
		if !o.Passed {
			t.Errorf("obstacle %+v should be marked passed", o)
		}
	}

	for i := 0; i < 10; i++ {
		u = e.Update()
	}
	if u.Score != 2 {
		t.Errorf("Score = %d after more ticks, expected 2", u.Score)
	}
}

func TestCollisionEndsGame(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	e.obstacles = []Obstacle{{X: 70, Y: 380, Width: 60, Height: 100}}

	u := e.Update()
	if u.State != StateGameOver || !u.IsGameOver {
		t.Fatalf("State = %v, expected GameOver", u.State)
	}
	if u.Score != 0 {
		t.Errorf("Score = %d, expected 0", u.Score)
	}

	frozen := e.Snapshot()
	next := e.Update()
	if !reflect.DeepEqual(frozen, next) {
		t.Errorf("Update after game over changed state:\n got %+v\nwant %+v", next, frozen)
	}
	if e.Flip() {
		t.Error("Flip after game over should be ignored")
	}
	if e.Pause() || e.Resume() {
		t.Error("Pause/Resume after game over should be ignored")
	}
	if e.State() != StateGameOver {
		t.Errorf("State = %v, expected GameOver to persist", e.State())
	}
}

func TestPassAndCollisionSameTick(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	e.obstacles = []Obstacle{
		{X: 20, Y: 0, Width: 60, Height: 300},
		{X: 70, Y: 380, Width: 60, Height: 100},
	}

	u := e.Update()
	if u.State != StateGameOver {
		t.Fatalf("State = %v, expected GameOver", u.State)
	}
	if u.Score != 1 {
		t.Errorf("Score = %d, expected the pass to count", u.Score)
	}
	if u.HighScore != 1 {
		t.Errorf("HighScore = %d, expected 1", u.HighScore)
	}
}

func TestPauseResume(t *testing.T) {
	e := newTestEngine(t)
	e.Start()
	e.Update()

	if !e.Pause() {
		t.Fatal("Pause while playing should be accepted")
	}
	before := e.Snapshot()
	for i := 0; i < 5; i++ {
		e.Update()
	}
	if !reflect.DeepEqual(before, e.Snapshot()) {
		t.Error("paused session should not advance")
	}
	if e.Flip() {
		t.Error("Flip while paused should be ignored")
	}
	if e.Pause() {
		t.Error("Pause while paused should be ignored")
	}

	if !e.Resume() {
		t.Fatal("Resume while paused should be accepted")
	}
	u := e.Update()
	if u.Tick != before.Tick+1 {
		t.Errorf("Tick = %d, expected %d", u.Tick, before.Tick+1)
	}
	if u.Player.VelocityY != before.Player.VelocityY+0.5 {
		t.Errorf("VelocityY = %v, expected to continue from %v", u.Player.VelocityY, before.Player.VelocityY)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []GameUpdate {
		e := newTestEngine(t)
		e.Reseed(99)
		e.Start()
		var out []GameUpdate
		for i := 0; i < 600 && e.State() == StatePlaying; i++ {
			if i%20 == 0 {
				e.Flip()
			}
			out = append(out, e.Update())
		}
		return out
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed and inputs diverged")
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	e := newTestEngine(t)
	e.Start()

	first := e.Update()
	first.Obstacles[0].X = 999

	if got := e.Snapshot().Obstacles[0].X; got == 999 {
		t.Error("mutating a snapshot changed engine state")
	}

	second := e.Update()
	if first.Obstacles[1].X != 400 {
		t.Errorf("earlier snapshot changed by a later tick: %v", first.Obstacles[1].X)
	}
	if second.Obstacles[1].X != 395 {
		t.Errorf("second snapshot X = %v, expected 395", second.Obstacles[1].X)
	}
}

func TestHighScore(t *testing.T) {
	e := newTestEngine(t)
	e.SetHighScore(10)
	e.SetHighScore(5)
	if e.HighScore() != 10 {
		t.Errorf("HighScore = %d, expected 10", e.HighScore())
	}

	e.Start()
	e.obstacles = []Obstacle{
		{X: 20, Y: 0, Width: 60, Height: 300},
		{X: 70, Y: 380, Width: 60, Height: 100},
	}
	e.Update()
	if e.HighScore() != 10 {
		t.Errorf("lower session score replaced high score: %d", e.HighScore())
	}

	e.Start()
	if e.HighScore() != 10 {
		t.Error("Start should keep the high score")
	}
}

func TestResizeAppliesOnStart(t *testing.T) {
	e := newTestEngine(t)
	e.Start()

	if err := e.Resize(1000, 600); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}
	if w, h := e.World(); w != 400 || h != 800 {
		t.Errorf("World() = %vx%v during session, expected 400x800", w, h)
	}

	e.Start()
	if w, h := e.World(); w != 1000 || h != 600 {
		t.Errorf("World() = %vx%v after Start, expected 1000x600", w, h)
	}
	if p := e.Snapshot().Player; p.X != 200 || p.Y != 300 {
		t.Errorf("player = %+v, expected x=200 y=300", p)
	}

	if err := e.Resize(1000, 100); !errors.Is(err, config.ErrWorldTooSmall) {
		t.Errorf("Resize(1000x100) = %v, expected ErrWorldTooSmall", err)
	}
}
