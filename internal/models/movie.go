// Package models defines data types for the movie catalog.
package models

import "time"

// RawRecord is one untyped movie entry as received from the external
// source. It only exists for the duration of a single import.
type RawRecord map[string]any

// Movie is the persisted movie entity. All columns except the identifier
// and title are nullable: a nil pointer is the explicit "unknown" marker,
// distinct from a valid zero or empty value.
type Movie struct {
	ID                  int        `json:"movie_id"`
	Title               string     `json:"title"`
	ReleaseDate         *time.Time `json:"release_date,omitempty"`
	Runtime             *int       `json:"runtime,omitempty"`
	VoteAverage         *float64   `json:"vote_average,omitempty"`
	VoteCount           *int       `json:"vote_count,omitempty"`
	OriginCountry       *string    `json:"origin_country,omitempty"`
	Overview            *string    `json:"overview,omitempty"`
	Revenue             *int64     `json:"revenue,omitempty"`
	Budget              *int64     `json:"budget,omitempty"`
	Adult               *bool      `json:"adult,omitempty"`
	CollectionName      *string    `json:"collection_name,omitempty"`
	OriginalLanguage    *string    `json:"original_language,omitempty"`
	OriginalTitle       *string    `json:"original_title,omitempty"`
	Popularity          *float64   `json:"popularity,omitempty"`
	ProductionCompanies *string    `json:"production_companies,omitempty"`
	ProductionCountries *string    `json:"production_countries,omitempty"`
	SpokenLanguages     *string    `json:"spoken_languages,omitempty"`
	Status              *string    `json:"status,omitempty"`
	Tagline             *string    `json:"tagline,omitempty"`
	Genres              []Genre    `json:"genres,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Genre is a tag attached to movies. Created on first encounter and
// immutable thereafter.
type Genre struct {
	ID   int    `json:"genre_id"`
	Name string `json:"name"`
}

// UpsertPolicy selects the conflict behavior when an imported movie
// already exists.
type UpsertPolicy string

const (
	// PolicyOverwrite replaces every mutable column with the incoming
	// record's normalized values, including degrading previously-known
	// fields back to unknown. Later imports win field by field.
	PolicyOverwrite UpsertPolicy = "overwrite"

	// PolicyIgnore inserts new movies only and leaves existing rows
	// untouched. Genre associations are still resynced.
	PolicyIgnore UpsertPolicy = "ignore"
)

// Valid reports whether p is a recognized policy.
func (p UpsertPolicy) Valid() bool {
	return p == PolicyOverwrite || p == PolicyIgnore
}

// ImportResult aggregates the outcome of one batch import. Processed
// counts records actually written (inserted + updated); rejected and
// conflict-ignored records count as Skipped only.
type ImportResult struct {
	BatchKey  string `json:"batch_key,omitempty"`
	Processed int    `json:"processed"`
	Inserted  int    `json:"inserted"`
	Updated   int    `json:"updated"`
	Skipped   int    `json:"skipped"`
}

// ImportRequest is the payload for triggering a batch import. Either
// Object (a storage key) or Records (inline payload) must be set.
type ImportRequest struct {
	Object  string       `json:"object,omitempty"`
	Records []RawRecord  `json:"records,omitempty"`
	Policy  UpsertPolicy `json:"policy"`
}

// AskRequest is the payload for a natural-language question.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the translated query and its results.
type AskResponse struct {
	Question string           `json:"question"`
	SQL      string           `json:"sql"`
	Strategy string           `json:"strategy"`
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
}

// PredictRequest is a feature map plus the display title it describes.
// Features absent from the map default to zero per the model manifest.
type PredictRequest struct {
	Title    string             `json:"title"`
	Features map[string]float64 `json:"features"`
}

// Prediction is the scored outcome for one movie.
type Prediction struct {
	Title       string  `json:"title"`
	Probability float64 `json:"probability"`
	Verdict     string  `json:"verdict"`
	Confidence  string  `json:"confidence"`
}
