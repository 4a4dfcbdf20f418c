package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/lixenwraith/vi-snake/constants"
)

var ErrNoRedisAddr = errors.New("redis address not configured")

// saveIfHigher runs atomically on the server; a non-numeric value counts as 0
var saveIfHigher = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1])) or 0
local score = tonumber(ARGV[1])
if score > cur then
	redis.call('SET', KEYS[1], ARGV[1])
	return score
end
return cur
`)

// RedisStore keeps the score under <prefix>highScore
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects and pings with a short timeout
func NewRedisStore(ctx context.Context, addr, password string, db int, prefix string) (*RedisStore, error) {
	if addr == "" {
		return nil, ErrNoRedisAddr
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, constants.StoreTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return &RedisStore{client: client, key: prefix + HighScoreKey}, nil
}

func (r *RedisStore) Load(ctx context.Context) (int, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return parseScore(raw), nil
}

func (r *RedisStore) Save(ctx context.Context, score int) error {
	if err := r.client.Set(ctx, r.key, strconv.Itoa(score), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisStore) SaveIfHigher(ctx context.Context, score int) (int, error) {
	cur, err := saveIfHigher.Run(ctx, r.client, []string{r.key}, strconv.Itoa(score)).Int()
	if err != nil {
		return 0, fmt.Errorf("redis save %s: %w", r.key, err)
	}
	return cur, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
