// Package service implements business logic for the movie catalog:
// batch imports, natural-language queries and success prediction.
package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/metrics"
	"github.com/cinelake/cinelake/internal/models"
	"github.com/cinelake/cinelake/internal/normalize"
)

// importerStore is the minimal store interface consumed by Importer.
// Defined at the consumer (per project convention) so the store package
// depends on no service types.
type importerStore interface {
	BeginBatch(ctx context.Context) (pgx.Tx, error)
	UpsertOverwrite(ctx context.Context, tx pgx.Tx, m *models.Movie) (bool, error)
	UpsertIgnore(ctx context.Context, tx pgx.Tx, m *models.Movie) (bool, error)
	SyncGenres(ctx context.Context, tx pgx.Tx, movieID int, genres []models.Genre) error
}

// Importer applies batches of raw movie records to the catalog. Each
// batch runs in a single transaction: a storage or database failure rolls
// the whole batch back, while records that fail validation are skipped
// and counted without aborting the rest.
type Importer struct {
	store importerStore
	log   *logrus.Logger
}

// NewImporter creates an Importer.
func NewImporter(store importerStore, log *logrus.Logger) *Importer {
	return &Importer{store: store, log: log}
}

// Run imports one batch of records under the given policy and returns
// per-record counts. batchKey identifies the source object in logs and
// the result; it may be empty for inline payloads.
func (s *Importer) Run(ctx context.Context, batchKey string, records []models.RawRecord, policy models.UpsertPolicy) (*models.ImportResult, error) {
	if !policy.Valid() {
		metrics.ImportBatches.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidPolicy, policy)
	}

	tx, err := s.store.BeginBatch(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	result := &models.ImportResult{BatchKey: batchKey}

	for i, raw := range records {
		if err := s.importRecord(ctx, tx, raw, policy, result); err != nil {
			metrics.ImportBatches.WithLabelValues("rolled_back").Inc()
			return nil, fmt.Errorf("record %d of batch %q: %w", i, batchKey, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		metrics.ImportBatches.WithLabelValues("rolled_back").Inc()
		return nil, fmt.Errorf("committing batch %q: %w", batchKey, err)
	}

	metrics.ImportBatches.WithLabelValues("committed").Inc()
	metrics.ImportRecords.WithLabelValues("inserted").Add(float64(result.Inserted))
	metrics.ImportRecords.WithLabelValues("updated").Add(float64(result.Updated))
	metrics.ImportRecords.WithLabelValues("skipped").Add(float64(result.Skipped))

	s.log.WithFields(logrus.Fields{
		"batch_key": batchKey,
		"policy":    policy,
		"processed": result.Processed,
		"inserted":  result.Inserted,
		"updated":   result.Updated,
		"skipped":   result.Skipped,
	}).Info("import batch committed")

	return result, nil
}

// importRecord validates, normalizes and upserts a single record. A
// validation failure is counted and logged, not returned; only database
// errors propagate so they can abort the batch.
func (s *Importer) importRecord(ctx context.Context, tx pgx.Tx, raw models.RawRecord, policy models.UpsertPolicy, result *models.ImportResult) error {
	id, err := normalize.Validate(raw)
	if err != nil {
		result.Skipped++
		s.log.WithFields(logrus.Fields{
			"batch_key": result.BatchKey,
			"movie_id":  id,
			"reason":    err.Error(),
		}).Warn("skipping invalid record")

		return nil
	}

	movie, err := normalize.Record(raw)
	if err != nil {
		return fmt.Errorf("normalizing movie %d: %w", id, err)
	}

	var created bool
	switch policy {
	case models.PolicyOverwrite:
		created, err = s.store.UpsertOverwrite(ctx, tx, movie)
	case models.PolicyIgnore:
		created, err = s.store.UpsertIgnore(ctx, tx, movie)
	}
	if err != nil {
		return err
	}

	// Processed counts records that reached the store, disjoint from
	// Skipped: an invalid or conflict-ignored record is skipped only.
	switch {
	case created:
		result.Processed++
		result.Inserted++
	case policy == models.PolicyOverwrite:
		result.Processed++
		result.Updated++
	default:
		result.Skipped++
	}

	// Genre links track the latest import under both policies, so a
	// conflicting row under ignore still gets its genres resynced.
	if err := s.store.SyncGenres(ctx, tx, movie.ID, normalize.Genres(raw)); err != nil {
		return err
	}

	return nil
}
