package input

import "github.com/lixenwraith/vi-snake/game"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // q, Esc, Ctrl+C
	IntentToggleSound // m
	IntentSetSound    // Explicit on/off from the browser checkbox
	IntentSettings    // s, opens/closes the difficulty dialog

	// Game control
	IntentToggle    // Space: restart when over, else pause/resume
	IntentStart     // Enter / start button
	IntentPause     // p / pause button
	IntentRestart   // r
	IntentDirection // Arrows, hjkl

	// Settings
	IntentDifficulty // 1-4
)

// Intent is a user request submitted to a session
type Intent struct {
	Type       IntentType
	Direction  game.Direction  // IntentDirection
	Difficulty game.Difficulty // IntentDifficulty
	Enabled    bool            // IntentSetSound
}

// Turn builds a direction intent
func Turn(d game.Direction) Intent {
	return Intent{Type: IntentDirection, Direction: d}
}

// SelectDifficulty builds a difficulty intent
func SelectDifficulty(d game.Difficulty) Intent {
	return Intent{Type: IntentDifficulty, Difficulty: d}
}

// SetSound builds an explicit sound on/off intent
func SetSound(enabled bool) Intent {
	return Intent{Type: IntentSetSound, Enabled: enabled}
}

func (t IntentType) String() string {
	switch t {
	case IntentQuit:
		return "quit"
	case IntentToggleSound:
		return "toggle_sound"
	case IntentSetSound:
		return "set_sound"
	case IntentSettings:
		return "settings"
	case IntentToggle:
		return "toggle"
	case IntentStart:
		return "start"
	case IntentPause:
		return "pause"
	case IntentRestart:
		return "restart"
	case IntentDirection:
		return "direction"
	case IntentDifficulty:
		return "difficulty"
	default:
		return "none"
	}
}
