package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/models"
	"github.com/cinelake/cinelake/internal/service"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func record(id any, title any) models.RawRecord {
	return models.RawRecord{"id": id, "title": title}
}

func TestImporter_OverwriteCounts(t *testing.T) {
	t.Parallel()

	store := newMockImporterStore(2)
	imp := service.NewImporter(store, testLogger())

	records := []models.RawRecord{
		record(float64(1), "New Movie"),
		record(float64(2), "Existing Movie"),
		record(nil, "No ID"),
		record(float64(4), "   "),
	}

	result, err := imp.Run(context.Background(), "batch.json", records, models.PolicyOverwrite)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Processed excludes validation rejects: 2 stored, 2 skipped.
	if result.Processed != 2 {
		t.Errorf("Processed = %d, want 2", result.Processed)
	}
	if result.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", result.Inserted)
	}
	if result.Updated != 1 {
		t.Errorf("Updated = %d, want 1", result.Updated)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}

	if !store.tx.committed {
		t.Error("batch transaction was not committed")
	}

	if len(store.overwrites) != 2 || len(store.ignores) != 0 {
		t.Errorf("overwrites = %v, ignores = %v; want 2 overwrites only",
			store.overwrites, store.ignores)
	}
}

func TestImporter_IgnoreSkipsExistingButSyncsGenres(t *testing.T) {
	t.Parallel()

	store := newMockImporterStore(7)
	imp := service.NewImporter(store, testLogger())

	raw := record(float64(7), "Seen Before")
	raw["genres"] = []any{
		map[string]any{"id": float64(18), "name": "Drama"},
	}

	result, err := imp.Run(context.Background(), "", []models.RawRecord{raw}, models.PolicyIgnore)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Inserted != 0 || result.Skipped != 1 {
		t.Errorf("Inserted = %d, Skipped = %d; want 0 and 1", result.Inserted, result.Skipped)
	}
	if result.Processed != 0 {
		t.Errorf("Processed = %d, want 0 for a conflict-ignored record", result.Processed)
	}

	genres := store.synced[7]
	if len(genres) != 1 || genres[0].Name != "Drama" {
		t.Errorf("synced genres = %v, want [Drama]", genres)
	}
}

func TestImporter_InvalidPolicy(t *testing.T) {
	t.Parallel()

	store := newMockImporterStore()
	imp := service.NewImporter(store, testLogger())

	_, err := imp.Run(context.Background(), "", []models.RawRecord{record(float64(1), "X")}, "merge")
	if !errors.Is(err, models.ErrInvalidPolicy) {
		t.Errorf("err = %v, want ErrInvalidPolicy", err)
	}

	if store.tx.committed {
		t.Error("transaction committed for rejected policy")
	}
}

func TestImporter_StoreErrorRollsBackBatch(t *testing.T) {
	t.Parallel()

	store := newMockImporterStore()
	store.upsertErr = errors.New("disk full")
	imp := service.NewImporter(store, testLogger())

	records := []models.RawRecord{
		record(float64(1), "First"),
		record(float64(2), "Second"),
	}

	_, err := imp.Run(context.Background(), "batch.json", records, models.PolicyOverwrite)
	if err == nil {
		t.Fatal("expected error from failing store")
	}

	if store.tx.committed {
		t.Error("transaction committed despite store error")
	}
	if !store.tx.rolledBack {
		t.Error("transaction was not rolled back")
	}
}

func TestImporter_EmptyBatchCommits(t *testing.T) {
	t.Parallel()

	store := newMockImporterStore()
	imp := service.NewImporter(store, testLogger())

	result, err := imp.Run(context.Background(), "empty.json", nil, models.PolicyIgnore)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Processed != 0 {
		t.Errorf("Processed = %d, want 0", result.Processed)
	}
	if !store.tx.committed {
		t.Error("empty batch should still commit")
	}
}
