package game

import "golang.org/x/exp/rand"

// Food 食物位置，永远不在蛇身上
type Food struct {
	Position Position `json:"position"`
}

// PlaceRandom 在 gridSize×gridSize 中均匀抽样，落在蛇身上则重抽。
// 前置条件：gridSize² > snake.Len()，棋盘被占满时不会返回。
func PlaceRandom(rng *rand.Rand, gridSize int, snake Snake) Food {
	for {
		p := Position{X: rng.Intn(gridSize), Y: rng.Intn(gridSize)}
		if !snake.Contains(p) {
			return Food{Position: p}
		}
	}
}
