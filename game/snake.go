package game

// Snake 蛇的不可变值：身体从头到尾排列，以及已提交的方向
type Snake struct {
	body []Position
	dir  Direction
}

// NewSnake 在棋盘中央创建 3 节、朝右的初始蛇
func NewSnake(gridSize int) Snake {
	c := gridSize / 2
	return Snake{
		body: []Position{{X: c, Y: c}, {X: c - 1, Y: c}, {X: c - 2, Y: c}},
		dir:  DirRight,
	}
}

// NewSnakeFrom 以给定身体（头在前）和方向构造蛇，body 会被复制
func NewSnakeFrom(body []Position, dir Direction) Snake {
	b := make([]Position, len(body))
	copy(b, body)
	return Snake{body: b, dir: dir}
}

func (s Snake) Head() Position { return s.body[0] }

func (s Snake) Len() int { return len(s.body) }

func (s Snake) Direction() Direction { return s.dir }

// Body 返回身体副本
func (s Snake) Body() []Position {
	b := make([]Position, len(s.body))
	copy(b, s.body)
	return b
}

// Contains 坐标是否被身体任一节占用
func (s Snake) Contains(p Position) bool {
	for _, b := range s.body {
		if b == p {
			return true
		}
	}
	return false
}

// Effective 解析本次实际生效的方向：掉头（180°）或无效方向一律沿当前方向继续
func (s Snake) Effective(d Direction) Direction {
	if !d.Valid() || d == s.dir.Opposite() {
		return s.dir
	}
	return d
}

// NextHead 按 d 前进一步后的候选蛇头
func (s Snake) NextHead(d Direction) Position {
	return s.body[0].Add(s.Effective(d).Offset())
}

// Move 前进一步，长度不变
func (s Snake) Move(d Direction) Snake {
	eff := s.Effective(d)
	body := make([]Position, 0, len(s.body))
	body = append(body, s.body[0].Add(eff.Offset()))
	body = append(body, s.body[:len(s.body)-1]...)
	return Snake{body: body, dir: eff}
}

// Grow 前进一步并保留尾巴，长度 +1（加分由调用方负责）
func (s Snake) Grow(d Direction) Snake {
	eff := s.Effective(d)
	body := make([]Position, 0, len(s.body)+1)
	body = append(body, s.body[0].Add(eff.Offset()))
	body = append(body, s.body...)
	return Snake{body: body, dir: eff}
}

// HasCollision 蛇头越界或与身体其他节重合
func (s Snake) HasCollision(gridSize int) bool {
	head := s.body[0]
	if !head.InGrid(gridSize) {
		return true
	}
	for _, b := range s.body[1:] {
		if b == head {
			return true
		}
	}
	return false
}
