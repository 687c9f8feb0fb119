package store

import (
	"context"
	"fmt"
)

// QueryStore executes generated SELECT statements on behalf of the
// natural-language query endpoint. Statements run in a read-only
// transaction so a bad translation can never mutate the catalog.
type QueryStore struct {
	Base
	RowLimit int
}

// NewQueryStore creates a new query store. rowLimit caps the number of
// rows returned per statement.
func NewQueryStore(base Base, rowLimit int) *QueryStore {
	return &QueryStore{Base: base, RowLimit: rowLimit}
}

// RunSelect executes a single SELECT and returns column names plus row
// values, truncated to the configured row limit.
func (s *QueryStore) RunSelect(ctx context.Context, query string) ([]string, [][]any, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var out [][]any
	for rows.Next() {
		if len(out) >= s.RowLimit {
			break
		}

		values, err := rows.Values()
		if err != nil {
			return nil, nil, fmt.Errorf("reading row: %w", err)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating rows: %w", err)
	}

	return columns, out, nil
}
