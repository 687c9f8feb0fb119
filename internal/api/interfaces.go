package api

import (
	"context"

	"github.com/cinelake/cinelake/internal/models"
)

// ImportService defines the batch import operation used by ImportHandler.
type ImportService interface {
	Run(ctx context.Context, batchKey string, records []models.RawRecord, policy models.UpsertPolicy) (*models.ImportResult, error)
}

// BatchSource fetches staged batch objects for object-keyed imports.
type BatchSource interface {
	ReadBatch(ctx context.Context, object string) ([]models.RawRecord, error)
}

// AskService answers natural-language catalog questions.
type AskService interface {
	Ask(ctx context.Context, question string) (*models.AskResponse, error)
}

// PredictService scores movies against the success model.
type PredictService interface {
	Ready() bool
	Predict(req models.PredictRequest) (*models.Prediction, error)
}

// MovieRepository defines movie read operations used by MovieHandler.
type MovieRepository interface {
	GetMovie(ctx context.Context, id int) (*models.Movie, error)
	ListMovies(ctx context.Context, limit, offset int) ([]*models.Movie, error)
	CountMovies(ctx context.Context) (int64, error)
}

// GenreRepository defines genre read operations used by GenreHandler.
type GenreRepository interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
}
