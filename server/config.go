package server

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"snakearena/game"
)

// Config 服务端启动参数（由 main 的 flag 填充）
type Config struct {
	Addr      string `validate:"required"`
	LogFile   string `validate:"required"`
	GridSize  int    `validate:"min=5,max=100"`
	TickMs    int    `validate:"min=20,max=2000"`
	ScoreStep int    `validate:"min=1,max=1000"`
	Seed      uint64 // 0 表示按时间取种子
}

// DefaultConfig 20×20 棋盘，150ms 一个 Tick，每个食物 10 分
func DefaultConfig() Config {
	return Config{
		Addr:      ":8080",
		LogFile:   "app.log",
		GridSize:  game.DefaultGridSize,
		TickMs:    int(game.DefaultTickInterval / time.Millisecond),
		ScoreStep: game.DefaultScoreStep,
	}
}

var validate = validator.New()

// Validate 校验字段范围
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GameConfig 转换为单局游戏参数
func (c Config) GameConfig() game.Config {
	return game.Config{
		GridSize:     c.GridSize,
		ScoreStep:    c.ScoreStep,
		TickInterval: time.Duration(c.TickMs) * time.Millisecond,
	}
}
