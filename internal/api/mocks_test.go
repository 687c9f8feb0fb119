package api_test

import (
	"context"

	"github.com/cinelake/cinelake/internal/models"
)

// mockImporter implements api.ImportService.
type mockImporter struct {
	runFn func(ctx context.Context, batchKey string, records []models.RawRecord, policy models.UpsertPolicy) (*models.ImportResult, error)
}

func (m *mockImporter) Run(ctx context.Context, batchKey string, records []models.RawRecord, policy models.UpsertPolicy) (*models.ImportResult, error) {
	return m.runFn(ctx, batchKey, records, policy)
}

// mockBatchSource implements api.BatchSource.
type mockBatchSource struct {
	readFn func(ctx context.Context, object string) ([]models.RawRecord, error)
}

func (m *mockBatchSource) ReadBatch(ctx context.Context, object string) ([]models.RawRecord, error) {
	return m.readFn(ctx, object)
}

// mockAsk implements api.AskService.
type mockAsk struct {
	askFn func(ctx context.Context, question string) (*models.AskResponse, error)
}

func (m *mockAsk) Ask(ctx context.Context, question string) (*models.AskResponse, error) {
	return m.askFn(ctx, question)
}

// mockPredictor implements api.PredictService.
type mockPredictor struct {
	ready     bool
	predictFn func(req models.PredictRequest) (*models.Prediction, error)
}

func (m *mockPredictor) Ready() bool { return m.ready }

func (m *mockPredictor) Predict(req models.PredictRequest) (*models.Prediction, error) {
	if m.predictFn == nil {
		return nil, models.ErrPredictorNotReady
	}
	return m.predictFn(req)
}

// mockMovieRepo implements api.MovieRepository.
type mockMovieRepo struct {
	getFn   func(ctx context.Context, id int) (*models.Movie, error)
	listFn  func(ctx context.Context, limit, offset int) ([]*models.Movie, error)
	countFn func(ctx context.Context) (int64, error)
}

func (m *mockMovieRepo) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	return m.getFn(ctx, id)
}

func (m *mockMovieRepo) ListMovies(ctx context.Context, limit, offset int) ([]*models.Movie, error) {
	return m.listFn(ctx, limit, offset)
}

func (m *mockMovieRepo) CountMovies(ctx context.Context) (int64, error) {
	if m.countFn == nil {
		return 0, nil
	}
	return m.countFn(ctx)
}

// mockGenreRepo implements api.GenreRepository.
type mockGenreRepo struct {
	listFn func(ctx context.Context) ([]models.Genre, error)
}

func (m *mockGenreRepo) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return m.listFn(ctx)
}
