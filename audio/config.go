package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/vi-snake/constants"
)

// AudioConfig holds audio output settings
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"volume"`
	SampleRate   int     `toml:"sample_rate"`
}

// DefaultAudioConfig returns sound on at half volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: constants.AudioMasterVolume,
		SampleRate:   constants.AudioSampleRate,
	}
}

// ApplyEnv overrides fields from VI_SNAKE_* environment variables
// Malformed values are ignored
func (cfg *AudioConfig) ApplyEnv() {
	// Check if audio is enabled
	if enabled := os.Getenv("VI_SNAKE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Load master volume (0-100 converted to 0.0-1.0)
	if volume := os.Getenv("VI_SNAKE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	// Load sample rate
	if sampleRate := os.Getenv("VI_SNAKE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
