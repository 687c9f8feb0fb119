package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cinelake/cinelake/internal/models"
)

// MovieStore handles movie persistence, including the per-batch upsert
// paths used by the importer and the read paths used by the API.
type MovieStore struct {
	Base
}

// NewMovieStore creates a new movie store.
func NewMovieStore(base Base) *MovieStore {
	return &MovieStore{Base: base}
}

// movieColumns is the canonical column list for scanning movie rows.
const movieColumns = `movie_id, title, release_date, runtime, vote_average,
	vote_count, origin_country, overview, revenue, budget, adult,
	collection_name, original_language, original_title, popularity,
	production_companies, production_countries, spoken_languages,
	status, tagline, created_at, updated_at`

func scanMovie(row pgx.Row) (*models.Movie, error) {
	var m models.Movie
	err := row.Scan(
		&m.ID, &m.Title, &m.ReleaseDate, &m.Runtime, &m.VoteAverage,
		&m.VoteCount, &m.OriginCountry, &m.Overview, &m.Revenue, &m.Budget,
		&m.Adult, &m.CollectionName, &m.OriginalLanguage, &m.OriginalTitle,
		&m.Popularity, &m.ProductionCompanies, &m.ProductionCountries,
		&m.SpokenLanguages, &m.Status, &m.Tagline, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// upsertArgs is the positional argument list shared by both upsert
// statements. Order must match the column list in the INSERT.
func upsertArgs(m *models.Movie) []any {
	return []any{
		m.ID, m.Title, m.ReleaseDate, m.Runtime, m.VoteAverage,
		m.VoteCount, m.OriginCountry, m.Overview, m.Revenue, m.Budget,
		m.Adult, m.CollectionName, m.OriginalLanguage, m.OriginalTitle,
		m.Popularity, m.ProductionCompanies, m.ProductionCountries,
		m.SpokenLanguages, m.Status, m.Tagline,
	}
}

const upsertInsertClause = `
	INSERT INTO movies (
		movie_id, title, release_date, runtime, vote_average,
		vote_count, origin_country, overview, revenue, budget, adult,
		collection_name, original_language, original_title, popularity,
		production_companies, production_countries, spoken_languages,
		status, tagline
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
	)`

// UpsertOverwrite inserts the movie or, on conflict, replaces every
// column of the existing row with the incoming values. Unknown incoming
// fields overwrite known stored ones; that is the point of the policy.
// Returns whether a new row was created.
func (s *MovieStore) UpsertOverwrite(ctx context.Context, tx pgx.Tx, m *models.Movie) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := upsertInsertClause + `
	ON CONFLICT (movie_id) DO UPDATE SET
		title = EXCLUDED.title,
		release_date = EXCLUDED.release_date,
		runtime = EXCLUDED.runtime,
		vote_average = EXCLUDED.vote_average,
		vote_count = EXCLUDED.vote_count,
		origin_country = EXCLUDED.origin_country,
		overview = EXCLUDED.overview,
		revenue = EXCLUDED.revenue,
		budget = EXCLUDED.budget,
		adult = EXCLUDED.adult,
		collection_name = EXCLUDED.collection_name,
		original_language = EXCLUDED.original_language,
		original_title = EXCLUDED.original_title,
		popularity = EXCLUDED.popularity,
		production_companies = EXCLUDED.production_companies,
		production_countries = EXCLUDED.production_countries,
		spoken_languages = EXCLUDED.spoken_languages,
		status = EXCLUDED.status,
		tagline = EXCLUDED.tagline,
		updated_at = now()
	RETURNING (xmax = 0) AS was_inserted`

	var wasInserted bool
	if err := tx.QueryRow(ctx, query, upsertArgs(m)...).Scan(&wasInserted); err != nil {
		return false, fmt.Errorf("upserting movie %d: %w", m.ID, err)
	}

	return wasInserted, nil
}

// UpsertIgnore inserts the movie only if no row with the same id exists.
// Returns whether a new row was created; false means an existing row was
// left untouched.
func (s *MovieStore) UpsertIgnore(ctx context.Context, tx pgx.Tx, m *models.Movie) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := upsertInsertClause + `
	ON CONFLICT (movie_id) DO NOTHING`

	tag, err := tx.Exec(ctx, query, upsertArgs(m)...)
	if err != nil {
		return false, fmt.Errorf("inserting movie %d: %w", m.ID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// SyncGenres replaces the movie's genre links with the given set. The
// delete-then-insert keeps links exact even when genres were removed
// upstream. Genre rows are created on first encounter and never updated.
func (s *MovieStore) SyncGenres(ctx context.Context, tx pgx.Tx, movieID int, genres []models.Genre) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID); err != nil {
		return fmt.Errorf("clearing genres for movie %d: %w", movieID, err)
	}

	for _, g := range genres {
		_, err := tx.Exec(ctx, `
			INSERT INTO genres (genre_id, name)
			VALUES ($1, $2)
			ON CONFLICT (genre_id) DO NOTHING`,
			g.ID, g.Name)
		if err != nil {
			return fmt.Errorf("inserting genre %d: %w", g.ID, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO movie_genres (movie_id, genre_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			movieID, g.ID)
		if err != nil {
			return fmt.Errorf("linking genre %d to movie %d: %w", g.ID, movieID, err)
		}
	}

	return nil
}

// GetMovie retrieves a movie by id, including its genres.
func (s *MovieStore) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + movieColumns + ` FROM movies WHERE movie_id = $1`

	m, err := scanMovie(s.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrMovieNotFound
		}

		return nil, fmt.Errorf("getting movie %d: %w", id, err)
	}

	genres, err := s.movieGenres(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Genres = genres

	return m, nil
}

func (s *MovieStore) movieGenres(ctx context.Context, movieID int) ([]models.Genre, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT g.genre_id, g.name
		FROM genres g
		JOIN movie_genres mg ON mg.genre_id = g.genre_id
		WHERE mg.movie_id = $1
		ORDER BY g.name`, movieID)
	if err != nil {
		return nil, fmt.Errorf("listing genres for movie %d: %w", movieID, err)
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

// ListMovies returns a page of movies ordered by release date, newest
// first. Genres are not populated on list rows.
func (s *MovieStore) ListMovies(ctx context.Context, limit, offset int) ([]*models.Movie, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + movieColumns + `
		FROM movies
		ORDER BY release_date DESC NULLS LAST, movie_id
		LIMIT $1 OFFSET $2`

	rows, err := s.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing movies: %w", err)
	}
	defer rows.Close()

	var movies []*models.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movie: %w", err)
		}
		movies = append(movies, m)
	}

	return movies, rows.Err()
}

// CountMovies returns the total number of stored movies.
func (s *MovieStore) CountMovies(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64
	if err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting movies: %w", err)
	}

	return count, nil
}
