package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"snakearena/game"
)

// Command 客户端命令类型
type Command string

const (
	CmdStart  Command = "start"
	CmdPause  Command = "pause"
	CmdResume Command = "resume"
	CmdMove   Command = "move"
)

// Input 客户端输入（意图），由房间转交给游戏状态机
type Input struct {
	PlayerID PlayerID
	Command  Command
	Dir      game.Direction // 仅 CmdMove 使用
	Seq      int64          // 客户端本地序列号，用于去重与确认
}

// 入站输入的简单 JSON 结构（WebSocket 文本消息）
// 示例：{"type":"move","command":"up","seq":3}
type InputMessage struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
	Seq     int64  `json:"seq,omitempty"`
}

// ParseInput 解析一条文本消息
func ParseInput(pid PlayerID, payload []byte) (Input, error) {
	var im InputMessage
	if err := json.Unmarshal(payload, &im); err != nil {
		return Input{}, fmt.Errorf("decode input: %w", err)
	}
	in := Input{PlayerID: pid, Seq: im.Seq}
	switch Command(strings.ToLower(im.Type)) {
	case CmdStart:
		in.Command = CmdStart
	case CmdPause:
		in.Command = CmdPause
	case CmdResume:
		in.Command = CmdResume
	case CmdMove:
		dir, err := game.ParseDirection(im.Command)
		if err != nil {
			return Input{}, fmt.Errorf("move: %w", err)
		}
		in.Command = CmdMove
		in.Dir = dir
	default:
		return Input{}, fmt.Errorf("unknown input type %q", im.Type)
	}
	return in, nil
}
