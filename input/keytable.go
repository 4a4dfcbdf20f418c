package input

import "github.com/lixenwraith/vi-snake/game"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (arrows, Enter, Esc, Ctrl+C)
	SpecialKeys map[Key]Intent

	// Printable key bindings
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[Key]Intent{
			KeyUp:     Turn(game.Up),
			KeyDown:   Turn(game.Down),
			KeyLeft:   Turn(game.Left),
			KeyRight:  Turn(game.Right),
			KeyEnter:  {Type: IntentStart},
			KeyEscape: {Type: IntentQuit},
			KeyCtrlC:  {Type: IntentQuit},
		},

		Runes: map[rune]Intent{
			' ': {Type: IntentToggle},

			// Vim motions
			'k': Turn(game.Up),
			'j': Turn(game.Down),
			'h': Turn(game.Left),
			'l': Turn(game.Right),

			'p': {Type: IntentPause},
			'r': {Type: IntentRestart},
			'm': {Type: IntentToggleSound},
			's': {Type: IntentSettings},
			'q': {Type: IntentQuit},

			'1': SelectDifficulty(game.DifficultyEasy),
			'2': SelectDifficulty(game.DifficultyNormal),
			'3': SelectDifficulty(game.DifficultyHard),
			'4': SelectDifficulty(game.DifficultyExtreme),
		},
	}
}

// Map translates a key event to an intent; unbound keys yield IntentNone
func (kt *KeyTable) Map(ev Event) Intent {
	if ev.Key == KeyRune {
		return kt.Runes[ev.Rune]
	}
	return kt.SpecialKeys[ev.Key]
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	c := &KeyTable{
		SpecialKeys: make(map[Key]Intent, len(kt.SpecialKeys)),
		Runes:       make(map[rune]Intent, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		c.SpecialKeys[k] = v
	}
	for r, v := range kt.Runes {
		c.Runes[r] = v
	}
	return c
}
