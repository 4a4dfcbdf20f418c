package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lixenwraith/vi-snake/constants"
)

var ErrNoPostgresDSN = errors.New("postgres dsn not configured")

const createKVTable = `CREATE TABLE IF NOT EXISTS kv_store (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Non-numeric stored values are replaced, matching Load reading them as 0
const upsertIfHigher = `INSERT INTO kv_store (key, value) VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	WHERE CASE WHEN btrim(kv_store.value) ~ '^-?[0-9]{1,18}$'
		THEN btrim(kv_store.value)::bigint < EXCLUDED.value::bigint
		ELSE true END`

// PostgresStore keeps the score as a row of kv_store
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore connects, pings and ensures the kv_store table exists
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, ErrNoPostgresDSN
	}

	initCtx, cancel := context.WithTimeout(ctx, constants.StoreTimeout)
	defer cancel()

	db, err := pgxpool.New(initCtx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := db.Ping(initCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := db.Exec(initCtx, createKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres create kv_store: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Load(ctx context.Context) (int, error) {
	var raw string
	err := p.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, HighScoreKey).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("postgres load: %w", err)
	}
	return parseScore(raw), nil
}

func (p *PostgresStore) Save(ctx context.Context, score int) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO kv_store (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		HighScoreKey, strconv.Itoa(score),
	)
	if err != nil {
		return fmt.Errorf("postgres save: %w", err)
	}
	return nil
}

func (p *PostgresStore) SaveIfHigher(ctx context.Context, score int) (int, error) {
	if _, err := p.db.Exec(ctx, upsertIfHigher, HighScoreKey, strconv.Itoa(score)); err != nil {
		return 0, fmt.Errorf("postgres save: %w", err)
	}
	return p.Load(ctx)
}

func (p *PostgresStore) Close() error {
	p.db.Close()
	return nil
}
