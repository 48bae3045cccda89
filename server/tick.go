package server

import (
	"sync"
	"time"
)

// Ticker 以固定间隔驱动房间内的游戏（单协程推进，Tick 之间不重叠）
type Ticker struct {
	mu      sync.Mutex
	stop    chan struct{}
	metrics *RoomMetrics
}

func NewTicker(m *RoomMetrics) *Ticker {
	return &Ticker{metrics: m}
}

// Start 启动新一轮 Tick 循环，已有循环会被替换
func (t *Ticker) Start(interval time.Duration, tick func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				start := time.Now()
				tick()
				if t.metrics != nil {
					t.metrics.AddTick(time.Since(start).Nanoseconds())
				}
			}
		}
	}()
}

// Stop 通知循环退出，不等待正在执行的 Tick
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

// Running 是否有活动的 Tick 循环
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}
