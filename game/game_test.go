package game

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

// fakeScheduler 记录启动/停止，tick 由测试手动触发
type fakeScheduler struct {
	mu       sync.Mutex
	starts   int
	stops    int
	interval time.Duration
	tick     func()
}

func (f *fakeScheduler) Start(interval time.Duration, tick func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	f.interval = interval
	f.tick = tick
}

func (f *fakeScheduler) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeScheduler) fire() {
	f.mu.Lock()
	tick := f.tick
	f.mu.Unlock()
	if tick != nil {
		tick()
	}
}

func newTestGame(t *testing.T, opts ...Option) (*Game, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	opts = append([]Option{WithScheduler(sched), WithSeed(1), WithLogger(zaptest.NewLogger(t).Sugar())}, opts...)
	return New(DefaultConfig(), opts...), sched
}

// 将食物放到不会被吃到的角落
func parkFood(g *Game) {
	g.mu.Lock()
	g.food = Food{Position: Position{0, 0}}
	g.mu.Unlock()
}

func TestNewGameNotStarted(t *testing.T) {
	g, sched := newTestGame(t)
	if !g.Phase().Is(NotStarted) {
		t.Fatalf("expected not_started, got %s", g.Phase())
	}
	if g.Snake().Contains(g.Food().Position) {
		t.Fatalf("initial food on snake")
	}
	if sched.starts != 0 {
		t.Fatalf("expected scheduler idle, got %d starts", sched.starts)
	}
	g.Tick()
	if g.Snapshot().Tick != 0 {
		t.Fatalf("expected tick ignored before start")
	}
}

func TestStartResetsState(t *testing.T) {
	g, sched := newTestGame(t)
	if !g.Start() {
		t.Fatalf("expected start accepted")
	}
	s := g.Snapshot()
	if !s.Phase.Is(Running) || s.Score != 0 || len(s.Snake) != 3 || s.Direction != DirRight {
		t.Fatalf("unexpected state after start: %+v", s)
	}
	if sched.starts != 1 || sched.interval != DefaultTickInterval {
		t.Fatalf("expected scheduler started at %v, got %d starts at %v", DefaultTickInterval, sched.starts, sched.interval)
	}
	if g.Start() {
		t.Fatalf("expected start rejected while running")
	}
}

func TestTickMovesBody(t *testing.T) {
	g, sched := newTestGame(t)
	g.Start()
	parkFood(g)
	sched.fire()
	want := []Position{{11, 10}, {10, 10}, {9, 10}}
	if got := g.Snake().Body(); !equalBody(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if g.Score() != 0 {
		t.Fatalf("expected score 0, got %d", g.Score())
	}
}

func TestTickEatsFood(t *testing.T) {
	g, sched := newTestGame(t)
	g.Start()
	g.mu.Lock()
	g.food = Food{Position: Position{11, 10}}
	g.mu.Unlock()
	sched.fire()
	want := []Position{{11, 10}, {10, 10}, {9, 10}, {8, 10}}
	s := g.Snapshot()
	if !equalBody(s.Snake, want) {
		t.Fatalf("expected %v, got %v", want, s.Snake)
	}
	if s.Score != DefaultScoreStep {
		t.Fatalf("expected score %d, got %d", DefaultScoreStep, s.Score)
	}
	if g.Snake().Contains(s.Food) {
		t.Fatalf("new food %v placed on snake", s.Food)
	}
	if !s.Phase.Is(Running) {
		t.Fatalf("expected running, got %s", s.Phase)
	}
}

func TestScoreStepConfigurable(t *testing.T) {
	sched := &fakeScheduler{}
	g := New(Config{GridSize: 20, ScoreStep: 1}, WithScheduler(sched), WithSeed(3))
	g.Start()
	g.mu.Lock()
	g.food = Food{Position: Position{11, 10}}
	g.mu.Unlock()
	sched.fire()
	if g.Score() != 1 {
		t.Fatalf("expected score 1, got %d", g.Score())
	}
	g.SetScoreStep(5)
	g.mu.Lock()
	g.food = Food{Position: Position{12, 10}}
	g.mu.Unlock()
	sched.fire()
	if g.Score() != 6 {
		t.Fatalf("expected score 6, got %d", g.Score())
	}
}

func TestChangeDirectionAppliedOnTick(t *testing.T) {
	g, sched := newTestGame(t)
	g.Start()
	parkFood(g)
	if !g.ChangeDirection(DirUp) {
		t.Fatalf("expected direction accepted")
	}
	if g.Snake().Direction() != DirRight {
		t.Fatalf("expected snake unchanged until tick")
	}
	sched.fire()
	if head := g.Snake().Head(); head != (Position{10, 9}) {
		t.Fatalf("expected head (10,9), got %v", head)
	}
	// 向下是掉头，忽略
	g.ChangeDirection(DirDown)
	sched.fire()
	if head := g.Snake().Head(); head != (Position{10, 8}) {
		t.Fatalf("expected head (10,8), got %v", head)
	}
	if g.ChangeDirection(DirNone) {
		t.Fatalf("expected DirNone rejected")
	}
}

func TestWallCollisionEndsGame(t *testing.T) {
	g, sched := newTestGame(t)
	g.Start()
	g.mu.Lock()
	g.snake = NewSnakeFrom([]Position{{0, 10}, {1, 10}, {2, 10}}, DirLeft)
	g.requested = DirLeft
	g.score = 30
	g.food = Food{Position: Position{5, 5}}
	g.mu.Unlock()
	sched.fire()
	p := g.Phase()
	if !p.Is(GameOver) || p.FinalScore != 30 {
		t.Fatalf("expected game_over(30), got %s", p)
	}
	if g.HighScore() != 30 {
		t.Fatalf("expected high score 30, got %d", g.HighScore())
	}
	if sched.stops != 1 {
		t.Fatalf("expected scheduler stopped once, got %d", sched.stops)
	}
	// 旧定时器的 Tick 被丢弃
	sched.fire()
	if g.Snapshot().Tick != 1 {
		t.Fatalf("expected no tick after game over")
	}
	if g.ChangeDirection(DirUp) || g.Pause() || g.Resume() {
		t.Fatalf("expected commands rejected after game over")
	}
}

func TestHighScoreOnlyRises(t *testing.T) {
	g, sched := newTestGame(t)
	g.Start()
	g.mu.Lock()
	g.highScore = 50
	g.score = 20
	g.snake = NewSnakeFrom([]Position{{19, 3}, {18, 3}}, DirRight)
	g.food = Food{Position: Position{0, 0}}
	g.mu.Unlock()
	sched.fire()
	if !g.Phase().Is(GameOver) {
		t.Fatalf("expected game over, got %s", g.Phase())
	}
	if g.HighScore() != 50 {
		t.Fatalf("expected high score 50, got %d", g.HighScore())
	}
	if !g.Start() {
		t.Fatalf("expected restart from game over")
	}
	s := g.Snapshot()
	if !s.Phase.Is(Running) || s.Phase.FinalScore != 0 || s.Score != 0 || s.HighScore != 50 || len(s.Snake) != 3 {
		t.Fatalf("unexpected state after restart: %+v", s)
	}
}

func TestPauseResume(t *testing.T) {
	g, sched := newTestGame(t)
	if g.Pause() || g.Resume() {
		t.Fatalf("expected pause/resume rejected before start")
	}
	g.Start()
	parkFood(g)
	sched.fire()
	before := g.Snapshot()
	if !g.Pause() {
		t.Fatalf("expected pause accepted")
	}
	if g.Pause() {
		t.Fatalf("expected second pause rejected")
	}
	if g.ChangeDirection(DirUp) {
		t.Fatalf("expected direction rejected while paused")
	}
	sched.fire()
	g.Tick()
	after := g.Snapshot()
	if !after.Phase.Is(Paused) || after.Tick != before.Tick || !equalBody(after.Snake, before.Snake) || after.Food != before.Food || after.Score != before.Score {
		t.Fatalf("expected state preserved while paused: before %+v after %+v", before, after)
	}
	if g.Start() {
		t.Fatalf("expected start rejected while paused")
	}
	if !g.Resume() {
		t.Fatalf("expected resume accepted")
	}
	if sched.starts != 2 || sched.stops != 1 {
		t.Fatalf("expected 2 starts and 1 stop, got %d/%d", sched.starts, sched.stops)
	}
	sched.fire()
	if got := g.Snapshot(); got.Tick != before.Tick+1 || got.Snake[0] != (Position{12, 10}) {
		t.Fatalf("expected one more step after resume, got %+v", got)
	}
}

func TestStaleSchedulerTickDropped(t *testing.T) {
	g, sched := newTestGame(t)
	g.Start()
	parkFood(g)
	stale := sched.tick
	g.Pause()
	g.Resume()
	stale()
	if g.Snapshot().Tick != 0 {
		t.Fatalf("expected stale tick dropped")
	}
	sched.fire()
	if g.Snapshot().Tick != 1 {
		t.Fatalf("expected current tick applied")
	}
}

func TestSetTickIntervalRestartsWhileRunning(t *testing.T) {
	g, sched := newTestGame(t)
	g.SetTickInterval(80 * time.Millisecond)
	if sched.starts != 0 {
		t.Fatalf("expected no restart before start")
	}
	g.Start()
	g.SetTickInterval(40 * time.Millisecond)
	if sched.starts != 2 || sched.interval != 40*time.Millisecond {
		t.Fatalf("expected restart at 40ms, got %d starts at %v", sched.starts, sched.interval)
	}
}

func TestListenerReceivesSnapshots(t *testing.T) {
	var got []Snapshot
	g, sched := newTestGame(t, WithListener(func(s Snapshot) { got = append(got, s) }))
	g.Start()
	parkFood(g)
	sched.fire()
	g.Pause()
	g.Pause()
	if len(got) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(got))
	}
	if !got[0].Phase.Is(Running) || got[1].Tick != 1 || !got[2].Phase.Is(Paused) {
		t.Fatalf("unexpected snapshot sequence %+v", got)
	}
}

func TestConcurrentInputAndTicks(t *testing.T) {
	g, sched := newTestGame(t)
	g.Start()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			g.ChangeDirection(allDirections[i%len(allDirections)])
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			sched.fire()
			_ = g.Snapshot()
		}
	}()
	wg.Wait()
	s := g.Snapshot()
	if s.Phase.Is(Running) && g.Snake().HasCollision(s.GridSize) {
		t.Fatalf("running snake must not be in collision")
	}
}
