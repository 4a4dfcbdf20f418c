package game

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/vi-snake/constants"
)

// TestRandomPlacerAvoidsSnake verifies placement never lands on the body
func TestRandomPlacerAvoidsSnake(t *testing.T) {
	p := NewRandomPlacer(rand.New(rand.NewSource(42)))
	snake := []Cell{{10, 10}, {10, 11}, {10, 12}, {11, 12}, {12, 12}}

	for i := 0; i < 1000; i++ {
		c, ok := p.Place(snake)
		if !ok {
			t.Fatal("Expected a free cell")
		}
		if !c.InBounds() {
			t.Fatalf("Placement %v out of bounds", c)
		}
		for _, seg := range snake {
			if seg == c {
				t.Fatalf("Placement %v landed on the snake", c)
			}
		}
	}
}

// TestRandomPlacerNearCapacity fills the board progressively up to capacity-1
func TestRandomPlacerNearCapacity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := NewRandomPlacer(rng)

	all := make([]Cell, 0, constants.BoardCapacity)
	for y := 0; y < constants.BoardSize; y++ {
		for x := 0; x < constants.BoardSize; x++ {
			all = append(all, Cell{X: x, Y: y})
		}
	}
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	for n := 0; n < constants.BoardCapacity; n += 37 {
		occupied := all[:n]
		taken := make(map[Cell]bool, n)
		for _, c := range occupied {
			taken[c] = true
		}
		for i := 0; i < 20; i++ {
			c, ok := p.Place(occupied)
			if !ok {
				t.Fatalf("Occupied %d: expected a free cell", n)
			}
			if taken[c] {
				t.Fatalf("Occupied %d: placement %v is taken", n, c)
			}
		}
	}

	// One free cell left: must be found every time
	last := all[constants.BoardCapacity-1]
	for i := 0; i < 10; i++ {
		c, ok := p.Place(all[:constants.BoardCapacity-1])
		if !ok || c != last {
			t.Fatalf("Expected the only free cell %v, got %v ok=%v", last, c, ok)
		}
	}
}

// TestRandomPlacerFullBoard verifies a full board reports no cell
func TestRandomPlacerFullBoard(t *testing.T) {
	p := NewRandomPlacer(rand.New(rand.NewSource(1)))

	all := make([]Cell, 0, constants.BoardCapacity)
	for y := 0; y < constants.BoardSize; y++ {
		for x := 0; x < constants.BoardSize; x++ {
			all = append(all, Cell{X: x, Y: y})
		}
	}

	if _, ok := p.Place(all); ok {
		t.Error("Expected no placement on a full board")
	}
}

// TestRandomPlacerCoversBoard verifies every free cell is reachable
func TestRandomPlacerCoversBoard(t *testing.T) {
	p := NewRandomPlacer(rand.New(rand.NewSource(3)))
	seen := make(map[Cell]bool)

	for i := 0; i < 20000; i++ {
		c, _ := p.Place(nil)
		seen[c] = true
	}

	if len(seen) != constants.BoardCapacity {
		t.Errorf("Expected all %d cells to be drawn, got %d", constants.BoardCapacity, len(seen))
	}
}
