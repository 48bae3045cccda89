package server

import (
	"encoding/json"
	"sort"
	"sync"

	"go.uber.org/zap"

	"snakearena/game"
)

// StateMessage 广播给客户端的状态消息
type StateMessage struct {
	Type    string        `json:"type"`
	Room    string        `json:"room"`
	State   game.Snapshot `json:"state"`
	Players []PlayerState `json:"players"`
}

// Room 房间：持有唯一一局游戏及其连接，Tick 由房间自己的 Ticker 推进
type Room struct {
	ID string

	game    *game.Game
	ticker  *Ticker
	metrics *RoomMetrics
	log     *zap.SugaredLogger

	mu      sync.RWMutex
	players map[PlayerID]*Player
}

// NewRoom 创建房间；seed 为 0 时使用时间种子
func NewRoom(id string, cfg game.Config, seed uint64, log *zap.SugaredLogger) *Room {
	r := &Room{
		ID:      id,
		metrics: &RoomMetrics{},
		log:     log.With("room", id),
		players: make(map[PlayerID]*Player),
	}
	r.ticker = NewTicker(r.metrics)
	opts := []game.Option{
		game.WithScheduler(r.ticker),
		game.WithLogger(r.log),
		game.WithListener(r.Broadcast),
	}
	if seed != 0 {
		opts = append(opts, game.WithSeed(seed))
	}
	r.game = game.New(cfg, opts...)
	return r
}

func (r *Room) Game() *game.Game { return r.game }

func (r *Room) Metrics() *RoomMetrics { return r.metrics }

// JoinPlayer 将连接加入房间，并立即推送当前状态
func (r *Room) JoinPlayer(name string, conn *ClientConn) *Player {
	p := &Player{ID: newPlayerID(), Name: name, Conn: conn}
	r.mu.Lock()
	r.players[p.ID] = p
	r.mu.Unlock()
	r.log.Infow("player joined", "player", p.ID, "name", name)
	if conn != nil {
		if b, err := r.encodeState(r.game.Snapshot()); err == nil && !conn.Enqueue(b) {
			r.metrics.IncChanFullDiscarded()
		}
	}
	return p
}

// LeavePlayer 将连接移出房间；游戏本身不受影响
func (r *Room) LeavePlayer(id PlayerID) {
	r.mu.Lock()
	p, ok := r.players[id]
	delete(r.players, id)
	r.mu.Unlock()
	if !ok {
		return
	}
	if p.Conn != nil {
		p.Conn.Close()
	}
	r.log.Infow("player left", "player", id)
}

// Players 当前连接列表（按 ID 排序）
func (r *Room) Players() []PlayerState {
	r.mu.RLock()
	out := make([]PlayerState, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, PlayerState{ID: string(p.ID), Name: p.Name})
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OnInput 把输入交给游戏状态机；方向只记录意图，等下一次 Tick 生效。
// 返回命令是否被接受。
func (r *Room) OnInput(in Input) bool {
	if in.PlayerID != "" && in.Seq > 0 {
		r.mu.Lock()
		p, ok := r.players[in.PlayerID]
		stale := ok && in.Seq <= p.lastSeq
		if ok && !stale {
			p.lastSeq = in.Seq
		}
		r.mu.Unlock()
		if stale {
			r.metrics.IncOldSeqIgnored()
			return false
		}
	}

	var accepted bool
	switch in.Command {
	case CmdStart:
		accepted = r.game.Start()
	case CmdPause:
		accepted = r.game.Pause()
	case CmdResume:
		accepted = r.game.Resume()
	case CmdMove:
		accepted = r.game.ChangeDirection(in.Dir)
	}
	if accepted {
		r.metrics.IncAccepted()
	} else {
		r.metrics.IncPhaseIgnored()
		r.log.Debugw("input ignored", "player", in.PlayerID, "command", in.Command, "phase", r.game.Phase())
	}
	return accepted
}

// Broadcast 将状态广播给所有连接（文本 JSON）
func (r *Room) Broadcast(s game.Snapshot) {
	b, err := r.encodeState(s)
	if err != nil {
		r.log.Errorw("encode state", "err", err)
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if p.Conn != nil && !p.Conn.Enqueue(b) {
			r.metrics.IncChanFullDiscarded()
		}
	}
}

func (r *Room) encodeState(s game.Snapshot) ([]byte, error) {
	return json.Marshal(StateMessage{
		Type:    "state",
		Room:    r.ID,
		State:   s,
		Players: r.Players(),
	})
}

// Close 停止 Tick 并断开所有连接
func (r *Room) Close() {
	r.ticker.Stop()
	r.mu.Lock()
	players := r.players
	r.players = make(map[PlayerID]*Player)
	r.mu.Unlock()
	for _, p := range players {
		if p.Conn != nil {
			p.Conn.Close()
		}
	}
}
