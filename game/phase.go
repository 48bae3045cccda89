package game

import "fmt"

// PhaseKind 游戏阶段
type PhaseKind int

const (
	NotStarted PhaseKind = iota
	Running
	Paused
	GameOver
)

func (k PhaseKind) String() string {
	switch k {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase(%d)", int(k))
	}
}

func (k PhaseKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PhaseKind) UnmarshalText(b []byte) error {
	for _, v := range []PhaseKind{NotStarted, Running, Paused, GameOver} {
		if v.String() == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// Phase 阶段及 GameOver 时携带的最终得分
type Phase struct {
	Kind       PhaseKind `json:"state"`
	FinalScore int       `json:"finalScore,omitempty"`
}

func (p Phase) Is(k PhaseKind) bool { return p.Kind == k }

func (p Phase) String() string {
	if p.Kind == GameOver {
		return fmt.Sprintf("%s(%d)", p.Kind, p.FinalScore)
	}
	return p.Kind.String()
}
