package models

import "errors"

// Sentinel errors for record validation. A record failing one of these is
// skipped and counted; it never aborts the batch.
var (
	ErrMissingID  = errors.New("record has no integer id")
	ErrBlankTitle = errors.New("record title is blank")
)

// Sentinel errors for entity lookups.
var (
	ErrMovieNotFound = errors.New("movie not found")
)

// ErrInvalidPolicy indicates an unrecognized upsert policy selector.
var ErrInvalidPolicy = errors.New("policy must be \"overwrite\" or \"ignore\"")

// ErrPredictorNotReady indicates the success predictor has no loaded model.
var ErrPredictorNotReady = errors.New("prediction model not loaded")

// ErrNoTranslation indicates that no strategy could produce a valid query
// for a question.
var ErrNoTranslation = errors.New("no translation produced a valid query")
