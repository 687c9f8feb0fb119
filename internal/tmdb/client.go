// Package tmdb extracts movie records from the upstream catalog API and
// stages them as batch objects for the importer.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/cinelake/cinelake/internal/models"
)

// DefaultBaseURL is the production catalog API endpoint.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// ErrNotFound marks ids with no movie behind them. Id ranges are sparse
// upstream, so callers skip these rather than fail.
var ErrNotFound = errors.New("movie id not found upstream")

// Client is a rate-limited catalog API client.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
}

// NewClient creates a Client. rps bounds request throughput; the
// upstream enforces its own quota and bans clients that ignore it.
func NewClient(apiKey, baseURL string, rps float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := fmt.Sprintf("%s%s?api_key=%s&language=en-US", c.baseURL, path, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("upstream returned %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	return nil
}

// LatestID returns the id of the most recently added movie upstream.
func (c *Client) LatestID(ctx context.Context) (int, error) {
	var latest struct {
		ID int `json:"id"`
	}
	if err := c.get(ctx, "/movie/latest", &latest); err != nil {
		return 0, err
	}

	return latest.ID, nil
}

// Movie fetches the full record for one movie id. The record stays
// untyped; normalization happens at import time.
func (c *Client) Movie(ctx context.Context, id int) (models.RawRecord, error) {
	var record models.RawRecord
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), &record); err != nil {
		return nil, err
	}

	return record, nil
}
