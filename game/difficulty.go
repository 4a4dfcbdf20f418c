package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/vi-snake/constants"
)

// Difficulty selects the base tick period
type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyExtreme
	difficultyCount
)

// DefaultDifficulty is used when nothing is configured
const DefaultDifficulty = DifficultyNormal

var ErrUnknownDifficulty = errors.New("unknown difficulty")

var difficultyNames = [difficultyCount]string{"easy", "normal", "hard", "extreme"}

var difficultyPeriods = [difficultyCount]time.Duration{
	constants.PeriodEasy,
	constants.PeriodNormal,
	constants.PeriodHard,
	constants.PeriodExtreme,
}

// Difficulties lists all levels from slowest to fastest
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExtreme}
}

// Period returns the base tick period
func (d Difficulty) Period() time.Duration {
	if d >= difficultyCount {
		return difficultyPeriods[DefaultDifficulty]
	}
	return difficultyPeriods[d]
}

// SpeedLabel is the speed number shown in the difficulty menu
func (d Difficulty) SpeedLabel() int {
	return int((constants.DifficultyIndicatorOrigin - d.Period()) / (10 * time.Millisecond))
}

func (d Difficulty) String() string {
	if d >= difficultyCount {
		return "unknown"
	}
	return difficultyNames[d]
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if d >= difficultyCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, d)
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDifficulty accepts a level name or its 1-based menu index
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if s == name {
			return Difficulty(i), nil
		}
	}
	if len(s) == 1 && s[0] >= '1' && s[0] < '1'+byte(difficultyCount) {
		return Difficulty(s[0] - '1'), nil
	}
	return DefaultDifficulty, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}
