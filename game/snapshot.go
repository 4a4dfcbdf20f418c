package game

import (
	"time"

	"github.com/lixenwraith/vi-snake/constants"
)

// Snapshot is a read-only copy of the state handed to presentation layers
type Snapshot struct {
	Snake        []Cell     `json:"snake"`
	Food         Cell       `json:"food"`
	Direction    Direction  `json:"direction"`
	Score        int        `json:"score"`
	HighScore    int        `json:"highScore"`
	NewRecord    bool       `json:"newRecord"`
	Running      bool       `json:"running"`
	Over         bool       `json:"over"`
	PeriodMs     int        `json:"periodMs"`
	BasePeriodMs int        `json:"basePeriodMs"`
	Speed        int        `json:"speed"`
	Difficulty   Difficulty `json:"difficulty"`
	BoardSize    int        `json:"boardSize"`

	// Session-level flags, filled in by the owner of the state
	SoundEnabled bool `json:"soundEnabled"`
}

// Snapshot copies the state
func (s *State) Snapshot() Snapshot {
	snake := make([]Cell, len(s.snake))
	copy(snake, s.snake)

	return Snapshot{
		Snake:        snake,
		Food:         s.food,
		Direction:    s.direction,
		Score:        s.score,
		HighScore:    s.highScore,
		NewRecord:    s.record,
		Running:      s.running,
		Over:         s.over,
		PeriodMs:     int(s.period / time.Millisecond),
		BasePeriodMs: int(s.basePeriod / time.Millisecond),
		Speed:        SpeedLevel(s.period),
		Difficulty:   s.difficulty,
		BoardSize:    constants.BoardSize,
	}
}

// SpeedLevel converts a tick period to the speed number shown in the score board
func SpeedLevel(period time.Duration) int {
	return int((constants.SpeedIndicatorOrigin - period) / (10 * time.Millisecond))
}

// Occupied reports whether the snapshot's snake covers c
func (sn *Snapshot) Occupied(c Cell) bool {
	for _, seg := range sn.Snake {
		if seg == c {
			return true
		}
	}
	return false
}

// IsHead reports whether c is the snake head
func (sn *Snapshot) IsHead(c Cell) bool {
	return len(sn.Snake) > 0 && sn.Snake[0] == c
}
