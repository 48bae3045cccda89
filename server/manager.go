package server

import (
	"sync"

	"go.uber.org/zap"

	"snakearena/game"
)

// RoomManager 管理多个房间的生命周期（由 main 显式创建并传递）
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	cfg  game.Config
	seed uint64
	log  *zap.SugaredLogger
}

func NewRoomManager(cfg game.Config, seed uint64, log *zap.SugaredLogger) *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*Room),
		cfg:   cfg,
		seed:  seed,
		log:   log,
	}
}

// GetOrCreateRoom 获取或创建房间；新房间处于 NotStarted，等待 start 命令
func (m *RoomManager) GetOrCreateRoom(id string) *Room {
	m.mu.RLock()
	r, ok := m.rooms[id]
	m.mu.RUnlock()
	if ok {
		return r
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[id]; ok {
		return r
	}
	var seed uint64
	if m.seed != 0 {
		seed = m.seed + uint64(len(m.rooms))
	}
	r = NewRoom(id, m.cfg, seed, m.log)
	m.rooms[id] = r
	m.log.Infow("room created", "room", id, "grid", m.cfg.GridSize, "tick", m.cfg.TickInterval)
	return r
}

// Room 查找已存在的房间
func (m *RoomManager) Room(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Close 关闭全部房间
func (m *RoomManager) Close() {
	m.mu.Lock()
	rooms := m.rooms
	m.rooms = make(map[string]*Room)
	m.mu.Unlock()
	for _, r := range rooms {
		r.Close()
	}
}
