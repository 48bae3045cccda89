package server

import "github.com/google/uuid"

// PlayerID 表示一次连接的唯一标识
type PlayerID string

func newPlayerID() PlayerID {
	return PlayerID(uuid.NewString())
}

// PlayerState 为广播给客户端的轻量玩家信息
type PlayerState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Player 房间内的一个连接（可操控同一条蛇，也可只观看）
type Player struct {
	ID   PlayerID
	Name string

	lastSeq int64 // 已接受的最大客户端序列号

	Conn *ClientConn // 网络连接的发送端（写协程）
}
