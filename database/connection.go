package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the pgx pool that backs every ledger repository. Repositories
// accept either the pool or a transaction, so this is the only place a
// connection string is ever parsed.
type DB struct {
	*pgxpool.Pool
}

// NewConnection opens a connection pool against the given PostgreSQL URL
// and verifies it with a ping before handing it out.
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close releases the pool and all of its connections
func (db *DB) Close() {
	db.Pool.Close()
}
