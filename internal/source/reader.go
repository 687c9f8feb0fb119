// Package source ingests raw movie batches from object storage, either
// on demand or in response to bucket notifications.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/cinelake/cinelake/internal/models"
)

// maxBatchBytes caps how much of an object the reader will parse. Batches
// beyond this are misconfigured uploads, not catalogs.
const maxBatchBytes = 256 << 20

// BatchReader fetches and decodes batch objects from a bucket.
type BatchReader struct {
	client *storage.Client
	bucket string
}

// NewBatchReader creates a BatchReader over the given bucket.
func NewBatchReader(client *storage.Client, bucket string) *BatchReader {
	return &BatchReader{client: client, bucket: bucket}
}

// Bucket returns the bucket this reader is bound to.
func (r *BatchReader) Bucket() string { return r.bucket }

// ReadBatch downloads and decodes one batch object. Accepted shapes are
// a top-level JSON array of records or an object with a "results" array,
// which is how upstream catalog dumps arrive.
func (r *BatchReader) ReadBatch(ctx context.Context, object string) ([]models.RawRecord, error) {
	rc, err := r.client.Bucket(r.bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening gs://%s/%s: %w", r.bucket, object, err)
	}
	defer rc.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(rc, maxBatchBytes))
	if err != nil {
		return nil, fmt.Errorf("reading gs://%s/%s: %w", r.bucket, object, err)
	}

	records, err := DecodeBatch(data)
	if err != nil {
		return nil, fmt.Errorf("decoding gs://%s/%s: %w", r.bucket, object, err)
	}

	return records, nil
}

// DecodeBatch parses batch JSON into raw records.
func DecodeBatch(data []byte) ([]models.RawRecord, error) {
	var records []models.RawRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var wrapped struct {
		Results []models.RawRecord `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("neither a record array nor a results object: %w", err)
	}

	if wrapped.Results == nil {
		return nil, fmt.Errorf("object has no results array")
	}

	return wrapped.Results, nil
}
