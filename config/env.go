package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/vi-snake/game"
)

// Environment variables, applied after the config file
const (
	EnvDebug         = "VI_SNAKE_DEBUG"
	EnvDifficulty    = "VI_SNAKE_DIFFICULTY"
	EnvStore         = "VI_SNAKE_STORE"
	EnvStorePath     = "VI_SNAKE_STORE_PATH"
	EnvRedisAddr     = "VI_SNAKE_REDIS_ADDR"
	EnvRedisPassword = "VI_SNAKE_REDIS_PASSWORD"
	EnvRedisDB       = "VI_SNAKE_REDIS_DB"
	EnvRedisPrefix   = "VI_SNAKE_REDIS_PREFIX"
	EnvPostgresDSN   = "VI_SNAKE_POSTGRES_DSN"
	EnvServerAddr    = "VI_SNAKE_ADDR"
	EnvAllowedOrigin = "VI_SNAKE_ALLOWED_ORIGIN"
)

// dotEnvFile is read from the working directory when present
var dotEnvFile = ".env"

// loadDotEnv exports .env entries without overriding the real environment
func loadDotEnv() {
	_ = godotenv.Load(dotEnvFile)
}

// applyEnv overrides fields from the environment
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}

	if v := os.Getenv(EnvDifficulty); v != "" {
		d, err := game.ParseDifficulty(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDifficulty, err)
		}
		c.Game.Difficulty = d
	}

	c.Audio.ApplyEnv()

	setString(&c.Store.Backend, EnvStore)
	setString(&c.Store.Path, EnvStorePath)
	setString(&c.Store.RedisAddr, EnvRedisAddr)
	setString(&c.Store.RedisPassword, EnvRedisPassword)
	setString(&c.Store.RedisPrefix, EnvRedisPrefix)
	setString(&c.Store.PostgresDSN, EnvPostgresDSN)
	if v := os.Getenv(EnvRedisDB); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRedisDB, err)
		}
		c.Store.RedisDB = n
	}

	setString(&c.Server.Addr, EnvServerAddr)
	setString(&c.Server.AllowedOrigin, EnvAllowedOrigin)

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
