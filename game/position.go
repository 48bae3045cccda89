package game

// DefaultGridSize 默认棋盘边长（正方形网格）
const DefaultGridSize = 20

// Position 网格坐标（值类型，按值比较）
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add 分量相加
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// InGrid 判断坐标是否落在 [0, size) 范围内
func (p Position) InGrid(size int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < size && p.Y < size
}
