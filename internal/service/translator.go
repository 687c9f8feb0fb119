package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/metrics"
	"github.com/cinelake/cinelake/internal/models"
)

// TranslationStrategy converts a natural-language question into a SQL
// SELECT. A strategy returns an error when it cannot translate the
// question; the chain moves on to the next one.
type TranslationStrategy interface {
	Name() string
	Translate(ctx context.Context, question string) (string, error)
}

// Translator runs translation strategies in priority order and validates
// whatever they produce before it is allowed anywhere near the database.
type Translator struct {
	strategies []TranslationStrategy
	log        *logrus.Logger
}

// NewTranslator creates a Translator. Strategies are tried in the order
// given.
func NewTranslator(log *logrus.Logger, strategies ...TranslationStrategy) *Translator {
	return &Translator{strategies: strategies, log: log}
}

// Translate returns the first valid SQL statement any strategy produces,
// along with the name of the strategy that produced it.
func (t *Translator) Translate(ctx context.Context, question string) (string, string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", "", fmt.Errorf("%w: empty question", models.ErrNoTranslation)
	}

	for _, strat := range t.strategies {
		sql, err := strat.Translate(ctx, question)
		if err != nil {
			t.log.WithFields(logrus.Fields{
				"strategy": strat.Name(),
				"error":    err.Error(),
			}).Debug("translation strategy failed")

			continue
		}

		sql = sanitizeSQL(sql)
		if err := validateSelect(sql); err != nil {
			t.log.WithFields(logrus.Fields{
				"strategy": strat.Name(),
				"error":    err.Error(),
			}).Warn("strategy produced invalid statement")

			continue
		}

		metrics.Translations.WithLabelValues(strat.Name()).Inc()

		return sql, strat.Name(), nil
	}

	metrics.Translations.WithLabelValues("none").Inc()

	return "", "", models.ErrNoTranslation
}

// fenceRe strips markdown code fences that language models like to wrap
// SQL in.
var fenceRe = regexp.MustCompile("(?s)```(?:sql)?\\s*(.*?)```")

func sanitizeSQL(sql string) string {
	if m := fenceRe.FindStringSubmatch(sql); m != nil {
		sql = m[1]
	}

	sql = strings.TrimSpace(sql)
	sql = strings.TrimSuffix(sql, ";")

	return strings.TrimSpace(sql)
}

// forbiddenSQL matches statement keywords that must never appear in a
// generated query, even inside a SELECT (CTE writes, DO blocks).
var forbiddenSQL = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|create|truncate|grant|revoke|copy|do)\b`)

// validateSelect enforces that a generated statement is a single
// read-only SELECT.
func validateSelect(sql string) error {
	if sql == "" {
		return fmt.Errorf("empty statement")
	}

	if strings.Contains(sql, ";") {
		return fmt.Errorf("multiple statements are not allowed")
	}

	if !strings.HasPrefix(strings.ToUpper(sql), "SELECT") {
		return fmt.Errorf("only SELECT statements are allowed")
	}

	if m := forbiddenSQL.FindString(sql); m != "" {
		return fmt.Errorf("forbidden keyword %q", strings.ToLower(m))
	}

	return nil
}
