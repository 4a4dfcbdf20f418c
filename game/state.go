package game

import (
	"errors"
	"time"

	"github.com/lixenwraith/vi-snake/constants"
)

var ErrDifficultyLocked = errors.New("difficulty can only change while the game is not running")

// State is the snake game state machine
// Not safe for concurrent use; a session owns it on a single goroutine
type State struct {
	// ===== BOARD =====

	snake     []Cell // Head first
	food      Cell
	direction Direction

	// ===== LIFECYCLE =====

	running bool
	over    bool

	// ===== SCORING =====

	score     int
	highScore int
	record    bool // High score raised during the current game

	// ===== SPEED =====

	period     time.Duration
	basePeriod time.Duration
	difficulty Difficulty

	placer FoodPlacer
}

// NewState creates a state at the initial layout
// A nil placer uses a clock-seeded RandomPlacer
func NewState(difficulty Difficulty, placer FoodPlacer) *State {
	if placer == nil {
		placer = NewRandomPlacer(nil)
	}
	s := &State{
		difficulty: difficulty,
		basePeriod: difficulty.Period(),
		placer:     placer,
	}
	s.Restart()
	return s
}

// Restart returns to the initial layout, keeping difficulty and high score
func (s *State) Restart() {
	s.snake = []Cell{{X: constants.InitialHeadX, Y: constants.InitialHeadY}}
	s.food = Cell{X: constants.InitialFoodX, Y: constants.InitialFoodY}
	s.direction = Up
	s.running = false
	s.over = false
	s.score = 0
	s.record = false
	s.period = s.basePeriod
}

// Step advances the snake one cell
// No-op unless running and not over
func (s *State) Step() StepResult {
	if !s.running || s.over {
		return StepResult{}
	}

	head := s.snake[0].Add(s.direction)

	// Collision is checked against the pre-move body, tail included
	if !head.InBounds() || s.occupies(head) {
		s.end()
		return StepResult{Signal: SignalGameOver}
	}

	s.snake = append(s.snake, Cell{})
	copy(s.snake[1:], s.snake)
	s.snake[0] = head

	if head != s.food {
		s.snake = s.snake[:len(s.snake)-1]
		return StepResult{}
	}

	result := StepResult{Signal: SignalEat}

	prev := s.score
	s.score += constants.FoodScore
	if s.score > s.highScore {
		s.highScore = s.score
		s.record = true
		result.NewRecord = true
	}

	if prev/constants.SpeedUpScoreStep < s.score/constants.SpeedUpScoreStep {
		floor := s.basePeriod - constants.SpeedUpLimit
		next := max(floor, s.period-constants.SpeedUpStep)
		result.SpeedUp = next != s.period
		s.period = next
	}

	food, ok := s.placer.Place(s.snake)
	if !ok {
		s.end()
		result.BoardFull = true
		// Eat and game over coincide; the terminal cue wins
		result.Signal = SignalGameOver
		return result
	}
	s.food = food

	return result
}

func (s *State) end() {
	s.over = true
	s.running = false
}

func (s *State) occupies(c Cell) bool {
	for _, seg := range s.snake {
		if seg == c {
			return true
		}
	}
	return false
}

// Turn changes direction for the next step
// Rejected unless running and not over, and for the exact reverse of the current direction
func (s *State) Turn(d Direction) bool {
	if !s.running || s.over || !d.Valid() {
		return false
	}
	if d == s.direction || d == s.direction.Reverse() {
		return false
	}
	s.direction = d
	return true
}

// Toggle restarts a finished game, otherwise flips between running and paused
func (s *State) Toggle() Signal {
	if s.over {
		s.Restart()
		return SignalNone
	}
	s.running = !s.running
	if s.running {
		return SignalStart
	}
	return SignalNone
}

// Start begins play, restarting first when the game is over
func (s *State) Start() Signal {
	if s.over {
		s.Restart()
	}
	if s.running {
		return SignalNone
	}
	s.running = true
	return SignalStart
}

// Pause stops a running game
func (s *State) Pause() bool {
	if !s.running || s.over {
		return false
	}
	s.running = false
	return true
}

// SetDifficulty changes base and current period while not running
func (s *State) SetDifficulty(d Difficulty) error {
	if s.running {
		return ErrDifficultyLocked
	}
	if d >= difficultyCount {
		return ErrUnknownDifficulty
	}
	s.difficulty = d
	s.basePeriod = d.Period()
	s.period = s.basePeriod
	return nil
}

// SeedHighScore raises the high score to a persisted value
// Lower values are ignored so the high score never decreases
func (s *State) SeedHighScore(score int) {
	if score > s.highScore {
		s.highScore = score
	}
}

func (s *State) Running() bool             { return s.running }
func (s *State) Over() bool                { return s.over }
func (s *State) Score() int                { return s.score }
func (s *State) HighScore() int            { return s.highScore }
func (s *State) Period() time.Duration     { return s.period }
func (s *State) BasePeriod() time.Duration { return s.basePeriod }
func (s *State) Difficulty() Difficulty    { return s.difficulty }
func (s *State) Direction() Direction      { return s.direction }
func (s *State) Food() Cell                { return s.food }
func (s *State) Head() Cell                { return s.snake[0] }
func (s *State) Len() int                  { return len(s.snake) }

// Active reports whether ticks should be delivered
func (s *State) Active() bool {
	return s.running && !s.over
}
