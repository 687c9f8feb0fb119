package client

import "github.com/cinelake/cinelake/internal/models"

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	SchemaVersion int     `json:"schema_version"`
	Database      string  `json:"database"`
	Predictor     string  `json:"predictor"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// MovieList is one page of the catalog.
type MovieList struct {
	Movies  []models.Movie `json:"movies"`
	Total   int64          `json:"total"`
	HasMore bool           `json:"has_more"`
}

// GenreList is the full genre listing.
type GenreList struct {
	Genres []models.Genre `json:"genres"`
	Count  int            `json:"count"`
}
