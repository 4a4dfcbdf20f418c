package main

import (
	"fmt"

	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/game"
)

// applyFlags overrides loaded configuration with explicitly set flags
// Empty strings and false leave the configured value in place
func applyFlags(cfg *config.Config, difficulty, backend string, debug bool) error {
	if difficulty != "" {
		d, err := game.ParseDifficulty(difficulty)
		if err != nil {
			return fmt.Errorf("-difficulty: %w", err)
		}
		cfg.Game.Difficulty = d
	}
	if backend != "" {
		cfg.Store.Backend = backend
	}
	if debug {
		cfg.Debug = true
	}
	return nil
}
