// Package store provides focused, single-concern data access stores for
// the movie catalog.
//
// Each store owns one domain (movies, genres, ad hoc queries) and embeds
// shared helpers (Pool, logger) via the Base struct. The store layer is
// the only writer of persisted state: no other package issues INSERT,
// UPDATE or DELETE statements.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// BeginBatch starts the read-write transaction that scopes one import
// batch. The caller owns it: every record of the batch is applied inside
// it and the whole batch commits or rolls back as one unit.
func (b *Base) BeginBatch(ctx context.Context) (pgx.Tx, error) {
	tx, err := b.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning batch transaction: %w", err)
	}

	return tx, nil
}

// beginReadTx starts a read-only transaction.
func (b *Base) beginReadTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := b.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}

	return tx, nil
}
