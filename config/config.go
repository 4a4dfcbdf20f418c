package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/store"
)

const (
	configDirName  = "vi-snake"
	configFileName = "config.toml"

	// DefaultServerAddr is the web frontend listen address
	DefaultServerAddr = ":8080"
)

// GameConfig holds gameplay settings
type GameConfig struct {
	Difficulty game.Difficulty `toml:"difficulty"`
}

// ServerConfig holds web frontend settings
type ServerConfig struct {
	Addr          string `toml:"addr"`
	AllowedOrigin string `toml:"allowed_origin"` // Empty allows any origin
}

// Config is the merged configuration of both binaries
type Config struct {
	Debug  bool              `toml:"debug"`
	Game   GameConfig        `toml:"game"`
	Audio  audio.AudioConfig `toml:"audio"`
	Store  store.Config      `toml:"store"`
	Server ServerConfig      `toml:"server"`

	// Keys maps key names to action names, "none" unbinds
	Keys map[string]string `toml:"keys"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game:   GameConfig{Difficulty: game.DefaultDifficulty},
		Audio:  *audio.DefaultAudioConfig(),
		Store:  store.Config{Backend: store.BackendFile},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// DefaultPath returns UserConfigDir()/vi-snake/config.toml
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

// Load layers defaults, the TOML file, .env and VI_SNAKE_* environment variables
// An empty path reads the default location and tolerates its absence; an explicit path must exist
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	loadDotEnv()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes path over the current values, rejecting unknown keys
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("audio volume %.2f out of range [0, 1]", c.Audio.MasterVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if _, err := input.LoadKeyConfig(c.Keys); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}

// KeyTable returns the default key table with [keys] overrides applied
func (c *Config) KeyTable() (*input.KeyTable, error) {
	override, err := input.LoadKeyConfig(c.Keys)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}

// Encode writes the configuration as TOML
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
