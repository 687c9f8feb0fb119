// Package client provides a typed Go SDK for the cinelake REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cinelake/cinelake/internal/models"
)

// Client is the cinelake API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client for the given base URL (e.g. "http://localhost:3040").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Health returns the liveness check response.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/api/v1/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Import triggers a batch import, by object key or with inline records.
func (c *Client) Import(ctx context.Context, req models.ImportRequest) (*models.ImportResult, error) {
	var result models.ImportResult
	if err := c.post(ctx, "/api/v1/imports", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ask answers a natural-language question about the catalog.
func (c *Client) Ask(ctx context.Context, question string) (*models.AskResponse, error) {
	var resp models.AskResponse
	if err := c.post(ctx, "/api/v1/ask", models.AskRequest{Question: question}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Predict scores a feature map against the success model.
func (c *Client) Predict(ctx context.Context, req models.PredictRequest) (*models.Prediction, error) {
	var pred models.Prediction
	if err := c.post(ctx, "/api/v1/predict", req, &pred); err != nil {
		return nil, err
	}
	return &pred, nil
}

// Movies returns one page of the catalog.
func (c *Client) Movies(ctx context.Context, limit, offset int) (*MovieList, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	var list MovieList
	if err := c.get(ctx, "/api/v1/movies", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Movie returns one movie with its genres.
func (c *Client) Movie(ctx context.Context, id int) (*models.Movie, error) {
	var movie models.Movie
	if err := c.get(ctx, fmt.Sprintf("/api/v1/movies/%d", id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Genres returns all known genres.
func (c *Client) Genres(ctx context.Context) (*GenreList, error) {
	var list GenreList
	if err := c.get(ctx, "/api/v1/genres", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// do executes an HTTP request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	u := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// get is a convenience wrapper for GET requests with query parameters.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post is a convenience wrapper for POST requests.
func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}
