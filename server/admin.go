package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// adminConfig 可热更新的房间参数；gridSize 只读
type adminConfig struct {
	GridSize  *int `json:"gridSize,omitempty" validate:"isdefault"`
	TickMs    *int `json:"tickMs,omitempty" validate:"omitempty,min=20,max=2000"`
	ScoreStep *int `json:"scoreStep,omitempty" validate:"omitempty,min=1,max=1000"`
}

// HandleAdminConfig 房间配置的读取与更新（热更新基本规则）
// GET /admin/config?room=room-1  返回当前配置
// POST /admin/config?room=room-1 以 JSON 载荷更新部分字段
func (h *Handler) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	roomID := roomFromQuery(r)
	room := h.rooms.GetOrCreateRoom(roomID)
	g := room.Game()

	switch r.Method {
	case http.MethodGet:
		cfg := g.Config()
		grid, tick, step := cfg.GridSize, int(cfg.TickInterval/time.Millisecond), cfg.ScoreStep
		writeJSON(w, http.StatusOK, adminConfig{GridSize: &grid, TickMs: &tick, ScoreStep: &step})
	case http.MethodPost:
		var body adminConfig
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if body.TickMs != nil {
			g.SetTickInterval(time.Duration(*body.TickMs) * time.Millisecond)
		}
		if body.ScoreStep != nil {
			g.SetScoreStep(*body.ScoreStep)
		}
		cfg := g.Config()
		h.log.Infow("config updated", "room", roomID, "tick", cfg.TickInterval, "scoreStep", cfg.ScoreStep)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	roomID := roomFromQuery(r)
	room := h.rooms.GetOrCreateRoom(roomID)
	writeJSON(w, http.StatusOK, map[string]any{
		"room":    roomID,
		"tick":    room.Game().Snapshot().Tick,
		"players": len(room.Players()),
		"metrics": room.Metrics().Snapshot(),
	})
}
