package game

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/vi-snake/constants"
)

// FoodPlacer picks a cell for the next food
type FoodPlacer interface {
	// Place returns a free cell, or false when every cell is occupied
	Place(occupied []Cell) (Cell, bool)
}

// RandomPlacer picks uniformly among free cells
// Random draws are tried first; once they keep hitting the snake the free
// cells are enumerated and one is drawn from that list
type RandomPlacer struct {
	rng     *rand.Rand
	retries int
}

// NewRandomPlacer creates a placer; a nil rng is seeded from the clock
func NewRandomPlacer(rng *rand.Rand) *RandomPlacer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomPlacer{
		rng:     rng,
		retries: constants.FoodPlacementRetries,
	}
}

func (p *RandomPlacer) Place(occupied []Cell) (Cell, bool) {
	taken := make(map[Cell]struct{}, len(occupied))
	for _, c := range occupied {
		taken[c] = struct{}{}
	}
	if len(taken) >= constants.BoardCapacity {
		return Cell{}, false
	}

	for i := 0; i < p.retries; i++ {
		c := Cell{X: p.rng.Intn(constants.BoardSize), Y: p.rng.Intn(constants.BoardSize)}
		if _, hit := taken[c]; !hit {
			return c, true
		}
	}

	free := make([]Cell, 0, constants.BoardCapacity-len(taken))
	for y := 0; y < constants.BoardSize; y++ {
		for x := 0; x < constants.BoardSize; x++ {
			c := Cell{X: x, Y: y}
			if _, hit := taken[c]; !hit {
				free = append(free, c)
			}
		}
	}
	return free[p.rng.Intn(len(free))], true
}
