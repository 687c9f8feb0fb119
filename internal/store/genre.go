package store

import (
	"context"
	"fmt"

	"github.com/cinelake/cinelake/internal/models"
)

// GenreStore handles genre read access. Genre writes happen only through
// MovieStore.SyncGenres as part of an import batch.
type GenreStore struct {
	Base
}

// NewGenreStore creates a new genre store.
func NewGenreStore(base Base) *GenreStore {
	return &GenreStore{Base: base}
}

// ListGenres returns all known genres ordered by name.
func (s *GenreStore) ListGenres(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `SELECT genre_id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scanning genre: %w", err)
		}
		genres = append(genres, g)
	}

	return genres, rows.Err()
}
