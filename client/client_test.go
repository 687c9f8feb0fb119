package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinelake/cinelake/client"
	"github.com/cinelake/cinelake/internal/models"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/imports", func(w http.ResponseWriter, r *http.Request) {
		var req models.ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(models.ImportResult{
			BatchKey:  req.Object,
			Processed: len(req.Records),
			Inserted:  len(req.Records),
		})
	})
	mux.HandleFunc("POST /api/v1/ask", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(models.AskResponse{
			Strategy: "patterns",
			Columns:  []string{"title"},
			Rows:     []map[string]any{{"title": "Alien"}},
		})
	})
	mux.HandleFunc("GET /api/v1/movies/7", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Movie{ID: 7, Title: "Seven"})
	})
	mux.HandleFunc("GET /api/v1/movies/404", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"not_found","message":"movie not found","request_id":"r-1"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_Import(t *testing.T) {
	t.Parallel()

	c := client.New(testServer(t).URL)

	result, err := c.Import(context.Background(), models.ImportRequest{
		Records: []models.RawRecord{{"id": 1, "title": "A"}},
		Policy:  models.PolicyOverwrite,
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if result.Processed != 1 || result.Inserted != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestClient_Ask(t *testing.T) {
	t.Parallel()

	c := client.New(testServer(t).URL)

	resp, err := c.Ask(context.Background(), "best movies")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if resp.Strategy != "patterns" || len(resp.Rows) != 1 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestClient_Movie(t *testing.T) {
	t.Parallel()

	c := client.New(testServer(t).URL)

	movie, err := c.Movie(context.Background(), 7)
	if err != nil {
		t.Fatalf("Movie: %v", err)
	}

	if movie.Title != "Seven" {
		t.Errorf("Title = %q", movie.Title)
	}
}

func TestClient_ParsesAPIErrors(t *testing.T) {
	t.Parallel()

	c := client.New(testServer(t).URL)

	_, err := c.Movie(context.Background(), 404)
	if err == nil {
		t.Fatal("expected error")
	}

	if !client.IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}

	apiErr, ok := err.(*client.APIError)
	if !ok {
		t.Fatalf("err type = %T", err)
	}
	if apiErr.Code != "not_found" || apiErr.RequestID != "r-1" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}
