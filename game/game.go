package game

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

const (
	// DefaultScoreStep 每吃一个食物的加分
	DefaultScoreStep = 10
	// DefaultTickInterval 默认 Tick 间隔
	DefaultTickInterval = 150 * time.Millisecond
)

// Config 单局游戏参数
type Config struct {
	GridSize     int
	ScoreStep    int
	TickInterval time.Duration
}

// DefaultConfig 20×20 棋盘，每个食物 10 分，150ms 一个 Tick
func DefaultConfig() Config {
	return Config{
		GridSize:     DefaultGridSize,
		ScoreStep:    DefaultScoreStep,
		TickInterval: DefaultTickInterval,
	}
}

// Scheduler 由宿主提供的定时器：按固定间隔调用 tick。
// Stop 不得等待正在执行的 tick 返回（GameOver 时会在 tick 内部调用 Stop）。
type Scheduler interface {
	Start(interval time.Duration, tick func())
	Stop()
}

type nopScheduler struct{}

func (nopScheduler) Start(time.Duration, func()) {}
func (nopScheduler) Stop()                       {}

// Snapshot 只读状态副本，供渲染/广播
type Snapshot struct {
	Tick      uint64     `json:"tick"`
	GridSize  int        `json:"gridSize"`
	Phase     Phase      `json:"phase"`
	Snake     []Position `json:"snake"`
	Direction Direction  `json:"direction"`
	Food      Position   `json:"food"`
	Score     int        `json:"score"`
	HighScore int        `json:"highScore"`
}

// Option 构造选项
type Option func(*Game)

// WithScheduler 指定驱动 Tick 的定时器
func WithScheduler(s Scheduler) Option {
	return func(g *Game) { g.sched = s }
}

// WithRand 指定食物随机源
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithSeed 以固定种子创建随机源，便于复现
func WithSeed(seed uint64) Option {
	return func(g *Game) { g.rng = rand.New(rand.NewSource(seed)) }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(g *Game) { g.log = l }
}

// WithListener 每次状态变化（Tick 或命令生效）后回调，回调时不持有锁
func WithListener(fn func(Snapshot)) Option {
	return func(g *Game) { g.listener = fn }
}

// Game 一局游戏的权威状态，唯一的状态持有者与修改者
type Game struct {
	mu  sync.Mutex
	cfg Config

	rng      *rand.Rand
	sched    Scheduler
	log      *zap.SugaredLogger
	listener func(Snapshot)

	snake     Snake
	food      Food
	phase     Phase
	score     int
	highScore int
	requested Direction // 下一次 Tick 使用的意图方向
	ticks     uint64
	epoch     uint64 // 每次启动定时器递增，旧定时器的 Tick 会被丢弃
}

// New 创建处于 NotStarted 的游戏
func New(cfg Config, opts ...Option) *Game {
	def := DefaultConfig()
	if cfg.GridSize <= 0 {
		cfg.GridSize = def.GridSize
	}
	if cfg.ScoreStep <= 0 {
		cfg.ScoreStep = def.ScoreStep
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = def.TickInterval
	}
	g := &Game{
		cfg:       cfg,
		sched:     nopScheduler{},
		log:       zap.NewNop().Sugar(),
		requested: DirRight,
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	g.snake = NewSnake(cfg.GridSize)
	g.food = PlaceRandom(g.rng, cfg.GridSize, g.snake)
	return g
}

// Start 仅在 NotStarted / GameOver 时生效：重置本局并启动定时器
func (g *Game) Start() bool {
	g.mu.Lock()
	if !g.phase.Is(NotStarted) && !g.phase.Is(GameOver) {
		g.mu.Unlock()
		return false
	}
	g.snake = NewSnake(g.cfg.GridSize)
	g.requested = DirRight
	g.score = 0
	g.ticks = 0
	g.food = PlaceRandom(g.rng, g.cfg.GridSize, g.snake)
	g.phase = Phase{Kind: Running}
	g.startSchedulerLocked()
	g.log.Infow("game started", "grid", g.cfg.GridSize, "food", g.food.Position)
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
	return true
}

// Pause 仅在 Running 时生效：停止定时器，保留全部状态
func (g *Game) Pause() bool {
	g.mu.Lock()
	if !g.phase.Is(Running) {
		g.mu.Unlock()
		return false
	}
	g.phase = Phase{Kind: Paused}
	g.stopSchedulerLocked()
	g.log.Debugw("game paused", "tick", g.ticks)
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
	return true
}

// Resume 仅在 Paused 时生效：重新启动定时器，不补发错过的 Tick
func (g *Game) Resume() bool {
	g.mu.Lock()
	if !g.phase.Is(Paused) {
		g.mu.Unlock()
		return false
	}
	g.phase = Phase{Kind: Running}
	g.startSchedulerLocked()
	g.log.Debugw("game resumed", "tick", g.ticks)
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
	return true
}

// ChangeDirection 仅记录意图方向，在下一次 Tick 生效
func (g *Game) ChangeDirection(d Direction) bool {
	if !d.Valid() {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.phase.Is(Running) {
		return false
	}
	g.requested = d
	return true
}

// Tick 推进一步（外部调度器调用）；非 Running 时为空操作
func (g *Game) Tick() {
	g.mu.Lock()
	snap, ok := g.stepLocked()
	g.mu.Unlock()
	if ok {
		g.notify(snap)
	}
}

// tickFor 绑定定时器代次，旧代次的 Tick 直接丢弃
func (g *Game) tickFor(epoch uint64) func() {
	return func() {
		g.mu.Lock()
		if epoch != g.epoch {
			g.mu.Unlock()
			return
		}
		snap, ok := g.stepLocked()
		g.mu.Unlock()
		if ok {
			g.notify(snap)
		}
	}
}

func (g *Game) stepLocked() (Snapshot, bool) {
	if !g.phase.Is(Running) {
		return Snapshot{}, false
	}
	g.ticks++
	if g.snake.NextHead(g.requested) == g.food.Position {
		g.snake = g.snake.Grow(g.requested)
		g.score += g.cfg.ScoreStep
		g.food = PlaceRandom(g.rng, g.cfg.GridSize, g.snake)
		g.log.Debugw("food eaten", "score", g.score, "length", g.snake.Len(), "food", g.food.Position)
	} else {
		g.snake = g.snake.Move(g.requested)
	}
	if g.snake.HasCollision(g.cfg.GridSize) {
		g.endLocked()
	}
	return g.snapshotLocked(), true
}

func (g *Game) endLocked() {
	g.phase = Phase{Kind: GameOver, FinalScore: g.score}
	if g.score > g.highScore {
		g.highScore = g.score
	}
	g.stopSchedulerLocked()
	g.log.Infow("game over", "score", g.score, "highScore", g.highScore, "head", g.snake.Head(), "tick", g.ticks)
}

func (g *Game) startSchedulerLocked() {
	g.epoch++
	g.sched.Start(g.cfg.TickInterval, g.tickFor(g.epoch))
}

func (g *Game) stopSchedulerLocked() {
	g.epoch++
	g.sched.Stop()
}

// SetScoreStep 修改加分步长，下一个食物起生效
func (g *Game) SetScoreStep(n int) {
	if n <= 0 {
		return
	}
	g.mu.Lock()
	g.cfg.ScoreStep = n
	g.mu.Unlock()
}

// SetTickInterval 修改 Tick 间隔；Running 时立即按新间隔重启定时器
func (g *Game) SetTickInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cfg.TickInterval = d
	if g.phase.Is(Running) {
		g.stopSchedulerLocked()
		g.startSchedulerLocked()
	}
}

func (g *Game) Config() Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg
}

func (g *Game) GridSize() int { return g.cfg.GridSize }

func (g *Game) Snake() Snake {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snake
}

func (g *Game) Food() Food {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.food
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

func (g *Game) HighScore() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.highScore
}

// Snapshot 一致性的完整状态副本
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() Snapshot {
	return Snapshot{
		Tick:      g.ticks,
		GridSize:  g.cfg.GridSize,
		Phase:     g.phase,
		Snake:     g.snake.Body(),
		Direction: g.snake.Direction(),
		Food:      g.food.Position,
		Score:     g.score,
		HighScore: g.highScore,
	}
}

func (g *Game) notify(s Snapshot) {
	if g.listener != nil {
		g.listener(s)
	}
}
