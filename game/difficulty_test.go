package game

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// TestDifficultyPeriods verifies the base period table
func TestDifficultyPeriods(t *testing.T) {
	expected := map[Difficulty]time.Duration{
		DifficultyEasy:    200 * time.Millisecond,
		DifficultyNormal:  150 * time.Millisecond,
		DifficultyHard:    100 * time.Millisecond,
		DifficultyExtreme: 70 * time.Millisecond,
	}

	for d, want := range expected {
		if got := d.Period(); got != want {
			t.Errorf("Expected %s period %v, got %v", d, want, got)
		}
	}

	if len(Difficulties()) != 4 {
		t.Errorf("Expected 4 difficulties, got %d", len(Difficulties()))
	}
}

// TestDifficultySpeedLabel verifies the menu speed numbers
func TestDifficultySpeedLabel(t *testing.T) {
	expected := []int{5, 10, 15, 18}
	for i, d := range Difficulties() {
		if got := d.SpeedLabel(); got != expected[i] {
			t.Errorf("Expected %s speed label %d, got %d", d, expected[i], got)
		}
	}
}

// TestParseDifficulty covers names, indices and rejects
func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"easy":    DifficultyEasy,
		"Normal":  DifficultyNormal,
		" hard ":  DifficultyHard,
		"EXTREME": DifficultyExtreme,
		"1":       DifficultyEasy,
		"4":       DifficultyExtreme,
	}
	for in, want := range cases {
		got, err := ParseDifficulty(in)
		if err != nil {
			t.Errorf("ParseDifficulty(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDifficulty(%q): expected %s, got %s", in, want, got)
		}
	}

	for _, bad := range []string{"", "0", "5", "insane"} {
		if _, err := ParseDifficulty(bad); !errors.Is(err, ErrUnknownDifficulty) {
			t.Errorf("ParseDifficulty(%q): expected ErrUnknownDifficulty, got %v", bad, err)
		}
	}
}

// TestSnapshotJSON verifies the wire shape consumed by the browser client
func TestSnapshotJSON(t *testing.T) {
	s := NewState(DifficultyHard, nil)
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded["difficulty"] != "hard" {
		t.Errorf("Expected difficulty \"hard\", got %v", decoded["difficulty"])
	}
	if decoded["periodMs"] != float64(100) {
		t.Errorf("Expected periodMs 100, got %v", decoded["periodMs"])
	}
	if decoded["speed"] != float64(10) {
		t.Errorf("Expected speed 10, got %v", decoded["speed"])
	}
	dir, ok := decoded["direction"].(map[string]any)
	if !ok || dir["x"] != float64(0) || dir["y"] != float64(-1) {
		t.Errorf("Expected direction {x:0,y:-1}, got %v", decoded["direction"])
	}
}

// TestSnapshotIsACopy verifies presenters cannot mutate the state
func TestSnapshotIsACopy(t *testing.T) {
	s := NewState(DifficultyNormal, nil)
	snap := s.Snapshot()
	snap.Snake[0] = Cell{X: 0, Y: 0}

	if s.Head() != (Cell{X: 10, Y: 10}) {
		t.Errorf("Expected state head untouched, got %v", s.Head())
	}
	if !snap.IsHead(Cell{X: 0, Y: 0}) || !snap.Occupied(Cell{X: 0, Y: 0}) {
		t.Error("Expected snapshot helpers to reflect the copy")
	}
}
