package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	poolReadyTimeout = 30 * time.Second
	pingTimeout      = 3 * time.Second
	pingRetryDelay   = 1500 * time.Millisecond
)

// NewPool opens the connection pool and waits for the database to accept
// connections, retrying pings until poolReadyTimeout elapses. Covers the
// window where the database container is still starting.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("database pool init failed: %w", err)
	}

	deadline := time.Now().Add(poolReadyTimeout)
	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			return pool, nil
		}
		if time.Now().After(deadline) {
			pool.Close()
			return nil, fmt.Errorf("database not reachable after %s: %w", poolReadyTimeout, err)
		}
		time.Sleep(pingRetryDelay)
	}
}
