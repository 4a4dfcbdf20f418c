package game

import "github.com/lixenwraith/vi-snake/constants"

// Cell is a board coordinate, origin at the top-left corner
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether the cell lies on the board
func (c Cell) InBounds() bool {
	return c.X >= 0 && c.X < constants.BoardSize && c.Y >= 0 && c.Y < constants.BoardSize
}

// Add returns the cell moved by one step in direction d
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

// Direction is a unit delta on the board
type Direction struct {
	DX int `json:"x"`
	DY int `json:"y"`
}

var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// Valid reports whether d is one of the four unit directions
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Signal is a discrete game event consumed by sound and metrics layers
type Signal uint8

const (
	SignalNone     Signal = iota
	SignalStart           // Game started or resumed
	SignalEat             // Food eaten
	SignalGameOver        // Collision or full board
)

func (s Signal) String() string {
	switch s {
	case SignalStart:
		return "start"
	case SignalEat:
		return "eat"
	case SignalGameOver:
		return "game-over"
	default:
		return "none"
	}
}

// StepResult reports what a single tick did
type StepResult struct {
	Signal    Signal
	NewRecord bool // High score raised; caller persists it
	SpeedUp   bool // Tick period shrank
	BoardFull bool // No free cell left for food
}
