package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/models"
)

// checkpointObject stores the highest movie id already staged, so each
// run resumes where the previous one stopped.
const checkpointObject = "last_id.txt"

// maxPerRun caps how many ids one extraction run walks. Keeps a cold
// start against a large id backlog from running unbounded.
const maxPerRun = 500

// ExtractResult summarizes one extraction run.
type ExtractResult struct {
	FromID  int    `json:"from_id"`
	ToID    int    `json:"to_id"`
	Fetched int    `json:"fetched"`
	Object  string `json:"object,omitempty"`
}

// Extractor walks new upstream ids and stages them as a batch object in
// the import bucket, where the notification listener picks them up.
type Extractor struct {
	client  *Client
	storage *storage.Client
	bucket  string
	log     *logrus.Logger
}

// NewExtractor creates an Extractor staging into the given bucket.
func NewExtractor(client *Client, sc *storage.Client, bucket string, log *logrus.Logger) *Extractor {
	return &Extractor{client: client, storage: sc, bucket: bucket, log: log}
}

// Run performs one incremental extraction: ids after the checkpoint up
// to the upstream latest, capped per run. Ids with no movie behind them
// are skipped. The checkpoint only advances after the batch object is
// written.
func (e *Extractor) Run(ctx context.Context) (*ExtractResult, error) {
	lastSaved, err := e.readCheckpoint(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := e.client.LatestID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching latest id: %w", err)
	}

	if latest <= lastSaved {
		e.log.WithField("last_id", lastSaved).Info("no new movies upstream")
		return &ExtractResult{FromID: lastSaved, ToID: lastSaved}, nil
	}

	from := lastSaved + 1
	to := latest
	if to-from+1 > maxPerRun {
		to = from + maxPerRun - 1
	}

	var records []models.RawRecord
	for id := from; id <= to; id++ {
		record, err := e.client.Movie(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetching movie %d: %w", id, err)
		}

		records = append(records, record)
	}

	object := fmt.Sprintf("movies_%d_to_%d.json", from, to)
	if err := e.writeBatch(ctx, object, records); err != nil {
		return nil, err
	}

	if err := e.writeCheckpoint(ctx, to); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"object":  object,
		"from_id": from,
		"to_id":   to,
		"fetched": len(records),
	}).Info("extraction batch staged")

	return &ExtractResult{FromID: from, ToID: to, Fetched: len(records), Object: object}, nil
}

// readCheckpoint returns 0 when no checkpoint exists yet.
func (e *Extractor) readCheckpoint(ctx context.Context) (int, error) {
	rc, err := e.storage.Bucket(e.bucket).Object(checkpointObject).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		e.log.Info("no checkpoint found, starting from 0")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("opening checkpoint: %w", err)
	}
	defer rc.Close() //nolint:errcheck

	data, err := io.ReadAll(rc)
	if err != nil {
		return 0, fmt.Errorf("reading checkpoint: %w", err)
	}

	id, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parsing checkpoint %q: %w", string(data), err)
	}

	return id, nil
}

func (e *Extractor) writeCheckpoint(ctx context.Context, id int) error {
	w := e.storage.Bucket(e.bucket).Object(checkpointObject).NewWriter(ctx)
	if _, err := fmt.Fprintf(w, "%d", id); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("closing checkpoint: %w", err)
	}

	return nil
}

func (e *Extractor) writeBatch(ctx context.Context, object string, records []models.RawRecord) error {
	if records == nil {
		records = []models.RawRecord{}
	}

	w := e.storage.Bucket(e.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/json"

	if err := json.NewEncoder(w).Encode(records); err != nil {
		return fmt.Errorf("encoding batch %s: %w", object, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("closing batch %s: %w", object, err)
	}

	return nil
}
