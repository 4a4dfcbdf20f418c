package input

import "github.com/lixenwraith/vi-snake/game"

// actionRegistry maps canonical action names to intents
// Used by keymap config loader to resolve TOML action strings to bindings
var actionRegistry map[string]Intent

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]Intent {
	return map[string]Intent{
		// Unbind sentinel
		"none": {},

		// System
		"quit":         {Type: IntentQuit},
		"toggle_sound": {Type: IntentToggleSound},
		"settings":     {Type: IntentSettings},

		// Control
		"toggle":  {Type: IntentToggle},
		"start":   {Type: IntentStart},
		"pause":   {Type: IntentPause},
		"restart": {Type: IntentRestart},

		// Movement
		"move_up":    Turn(game.Up),
		"move_down":  Turn(game.Down),
		"move_left":  Turn(game.Left),
		"move_right": Turn(game.Right),

		// Difficulty
		"difficulty_easy":    SelectDifficulty(game.DifficultyEasy),
		"difficulty_normal":  SelectDifficulty(game.DifficultyNormal),
		"difficulty_hard":    SelectDifficulty(game.DifficultyHard),
		"difficulty_extreme": SelectDifficulty(game.DifficultyExtreme),
	}
}

// ActionIntent returns the intent bound to an action name
func ActionIntent(name string) (Intent, bool) {
	in, ok := actionRegistry[name]
	return in, ok
}
