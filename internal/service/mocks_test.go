package service_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cinelake/cinelake/internal/models"
)

// fakeTx implements pgx.Tx just enough for the importer, which only ever
// commits or rolls back; statement execution happens behind the store
// mock.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                         { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                         { return nil }

// mockImporterStore implements service.importerStore for tests. existing
// ids simulate rows already in the catalog.
type mockImporterStore struct {
	tx        *fakeTx
	beginErr  error
	upsertErr error
	syncErr   error

	existing   map[int]bool
	overwrites []int
	ignores    []int
	synced     map[int][]models.Genre
}

func newMockImporterStore(existingIDs ...int) *mockImporterStore {
	existing := make(map[int]bool)
	for _, id := range existingIDs {
		existing[id] = true
	}

	return &mockImporterStore{
		tx:       &fakeTx{},
		existing: existing,
		synced:   make(map[int][]models.Genre),
	}
}

func (m *mockImporterStore) BeginBatch(context.Context) (pgx.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return m.tx, nil
}

func (m *mockImporterStore) UpsertOverwrite(_ context.Context, _ pgx.Tx, movie *models.Movie) (bool, error) {
	if m.upsertErr != nil {
		return false, m.upsertErr
	}

	m.overwrites = append(m.overwrites, movie.ID)
	created := !m.existing[movie.ID]
	m.existing[movie.ID] = true

	return created, nil
}

func (m *mockImporterStore) UpsertIgnore(_ context.Context, _ pgx.Tx, movie *models.Movie) (bool, error) {
	if m.upsertErr != nil {
		return false, m.upsertErr
	}

	m.ignores = append(m.ignores, movie.ID)
	created := !m.existing[movie.ID]
	m.existing[movie.ID] = true

	return created, nil
}

func (m *mockImporterStore) SyncGenres(_ context.Context, _ pgx.Tx, movieID int, genres []models.Genre) error {
	if m.syncErr != nil {
		return m.syncErr
	}

	m.synced[movieID] = genres

	return nil
}

// mockQueryStore implements service.askQueryStore for tests.
type mockQueryStore struct {
	columns []string
	rows    [][]any
	err     error

	gotQuery string
}

func (m *mockQueryStore) RunSelect(_ context.Context, query string) ([]string, [][]any, error) {
	m.gotQuery = query
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.columns, m.rows, nil
}

// fixedStrategy returns a canned translation (or error) under a given
// name.
type fixedStrategy struct {
	name string
	sql  string
	err  error
}

func (f *fixedStrategy) Name() string { return f.name }

func (f *fixedStrategy) Translate(context.Context, string) (string, error) {
	return f.sql, f.err
}
