package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cinelake/cinelake/internal/api"
)

func TestLiveness_NoDatabase(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewHealthHandler(nil, &mockPredictor{ready: true}, testLogger(), "test-1.0.0")
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("status = %v", resp["status"])
	}
	if resp["database"] != "not_configured" {
		t.Errorf("database = %v", resp["database"])
	}
	if resp["predictor"] != "ready" {
		t.Errorf("predictor = %v", resp["predictor"])
	}
	if resp["version"] != "test-1.0.0" {
		t.Errorf("version = %v", resp["version"])
	}
}

func TestReadiness_NoDatabase(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewHealthHandler(nil, &mockPredictor{}, testLogger(), "test-1.0.0")
	r.GET("/ready", h.Readiness)

	w := doRequest(r, http.MethodGet, "/ready", "")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp.Status != "not_ready" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Checks["predictor"] != "model not loaded" {
		t.Errorf("predictor check = %q", resp.Checks["predictor"])
	}
}
