package service

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/metrics"
	"github.com/cinelake/cinelake/internal/models"
)

// modelManifest is the exported form of the trained success classifier:
// the ordered feature names, the standard scaler fitted alongside it and
// the logistic coefficients distilled from the trained ensemble.
type modelManifest struct {
	Features     []string  `json:"features"`
	Means        []float64 `json:"scaler_means"`
	Stds         []float64 `json:"scaler_stds"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func (m *modelManifest) validate() error {
	n := len(m.Features)
	if n == 0 {
		return fmt.Errorf("manifest has no features")
	}

	if len(m.Means) != n || len(m.Stds) != n || len(m.Coefficients) != n {
		return fmt.Errorf("manifest arrays disagree: %d features, %d means, %d stds, %d coefficients",
			n, len(m.Means), len(m.Stds), len(m.Coefficients))
	}

	for i, s := range m.Stds {
		if s == 0 {
			return fmt.Errorf("feature %q has zero scale", m.Features[i])
		}
	}

	return nil
}

// Predictor scores movies against the success model. It serves requests
// without a model loaded (reporting not ready) so the rest of the API is
// unaffected by a missing manifest.
type Predictor struct {
	model atomic.Pointer[modelManifest]
	log   *logrus.Logger
}

// NewPredictor creates a Predictor with no model loaded.
func NewPredictor(log *logrus.Logger) *Predictor {
	return &Predictor{log: log}
}

// LoadManifest reads and installs a model manifest from disk. Safe to
// call again to hot-swap the model.
func (p *Predictor) LoadManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading model manifest: %w", err)
	}

	var m modelManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parsing model manifest: %w", err)
	}

	if err := m.validate(); err != nil {
		return fmt.Errorf("invalid model manifest %s: %w", path, err)
	}

	p.model.Store(&m)
	metrics.PredictorReady.Set(1)

	p.log.WithFields(logrus.Fields{
		"path":     path,
		"features": len(m.Features),
	}).Info("prediction model loaded")

	return nil
}

// Ready reports whether a model is loaded and serving.
func (p *Predictor) Ready() bool {
	return p.model.Load() != nil
}

// Predict scores one feature map. Features absent from the request
// default to zero, matching how the model was trained on sparse rows.
func (p *Predictor) Predict(req models.PredictRequest) (*models.Prediction, error) {
	m := p.model.Load()
	if m == nil {
		return nil, models.ErrPredictorNotReady
	}

	z := m.Intercept
	for i, name := range m.Features {
		scaled := (req.Features[name] - m.Means[i]) / m.Stds[i]
		z += m.Coefficients[i] * scaled
	}

	prob := 1 / (1 + math.Exp(-z))
	verdict, confidence := interpret(prob)

	return &models.Prediction{
		Title:       req.Title,
		Probability: math.Round(prob*1000) / 1000,
		Verdict:     verdict,
		Confidence:  confidence,
	}, nil
}

// interpret maps a success probability to a verdict. The middle band is
// where the model is least certain, so confidence dips there.
func interpret(prob float64) (verdict, confidence string) {
	switch {
	case prob >= 0.7:
		return "high success potential", "high"
	case prob >= 0.5:
		return "moderate success potential", "medium"
	case prob >= 0.3:
		return "low success potential", "medium"
	default:
		return "very low success potential", "high"
	}
}
