package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
)

// HighScoreKey is the key under which every backend persists the high score
const HighScoreKey = "highScore"

// Backend names accepted by Open
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// ScoreStore persists the single best score
type ScoreStore interface {
	// Load returns the persisted score, or 0 when absent or unreadable as an integer
	Load(ctx context.Context) (int, error)
	// Save persists the score unconditionally
	Save(ctx context.Context, score int) error
	// SaveIfHigher persists score only when it beats the stored value
	// Returns the stored value afterwards, the larger of the two
	SaveIfHigher(ctx context.Context, score int) (int, error)
	Close() error
}

// Config selects and parameterizes a backend
type Config struct {
	Backend       string `toml:"backend"`
	Path          string `toml:"path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
	PostgresDSN   string `toml:"postgres_dsn"`
}

// Open connects the configured backend
// An unavailable backend is logged and replaced by an empty MemoryStore; the returned error is non-nil in that case
func Open(ctx context.Context, cfg Config) (ScoreStore, error) {
	s, err := open(ctx, cfg)
	if err != nil {
		log.Printf("store: %s backend unavailable, using memory: %v", cfg.Backend, err)
		return NewMemoryStore(0), err
	}
	return s, nil
}

func open(ctx context.Context, cfg Config) (ScoreStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		path := cfg.Path
		if path == "" {
			p, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewFileStore(path)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
	case BackendPostgres:
		return NewPostgresStore(ctx, cfg.PostgresDSN)
	case BackendMemory:
		return NewMemoryStore(0), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// parseScore decodes a stored decimal value; corrupt or negative values read as 0
func parseScore(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
