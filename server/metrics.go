package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount         int64 // 统计的 Tick 次数
	InputsAccepted    int64 // 被接受的输入数
	PhaseIgnored      int64 // 因阶段不符被忽略的命令数
	OldSeqIgnored     int64 // 因旧序列被忽略的输入数
	Malformed         int64 // 无法解析的消息数
	ChanFullDiscarded int64 // 因发送队列满被丢弃的消息数
	TotalTickNs       int64 // Tick 累计耗时（纳秒）
}

func (m *RoomMetrics) IncAccepted()          { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncPhaseIgnored()      { atomic.AddInt64(&m.PhaseIgnored, 1) }
func (m *RoomMetrics) IncOldSeqIgnored()     { atomic.AddInt64(&m.OldSeqIgnored, 1) }
func (m *RoomMetrics) IncMalformed()         { atomic.AddInt64(&m.Malformed, 1) }
func (m *RoomMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"phase_ignored":       atomic.LoadInt64(&m.PhaseIgnored),
		"old_seq_ignored":     atomic.LoadInt64(&m.OldSeqIgnored),
		"malformed":           atomic.LoadInt64(&m.Malformed),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"avg_tick_ms":         avgMs,
	}
}
