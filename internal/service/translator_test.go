package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cinelake/cinelake/internal/models"
	"github.com/cinelake/cinelake/internal/service"
)

func TestTranslator_FallsThroughToNextStrategy(t *testing.T) {
	t.Parallel()

	tr := service.NewTranslator(testLogger(),
		&fixedStrategy{name: "primary", err: errors.New("quota exceeded")},
		&fixedStrategy{name: "backup", sql: "SELECT title FROM movies"},
	)

	sql, strategy, err := tr.Translate(context.Background(), "any question")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	if strategy != "backup" {
		t.Errorf("strategy = %q, want 'backup'", strategy)
	}
	if sql != "SELECT title FROM movies" {
		t.Errorf("sql = %q", sql)
	}
}

func TestTranslator_RejectsNonSelect(t *testing.T) {
	t.Parallel()

	tr := service.NewTranslator(testLogger(),
		&fixedStrategy{name: "bad", sql: "DELETE FROM movies"},
	)

	_, _, err := tr.Translate(context.Background(), "drop everything")
	if !errors.Is(err, models.ErrNoTranslation) {
		t.Errorf("err = %v, want ErrNoTranslation", err)
	}
}

func TestTranslator_RejectsUnsafeStatements(t *testing.T) {
	t.Parallel()

	cases := []string{
		"SELECT 1; DROP TABLE movies",
		"SELECT * FROM movies WHERE title = 'x'; DELETE FROM movies",
		"WITH x AS (SELECT 1) SELECT * FROM x",
	}

	for _, sql := range cases {
		tr := service.NewTranslator(testLogger(), &fixedStrategy{name: "bad", sql: sql})

		if _, _, err := tr.Translate(context.Background(), "q"); err == nil {
			t.Errorf("statement %q was accepted", sql)
		}
	}
}

func TestTranslator_StripsFencesAndSemicolon(t *testing.T) {
	t.Parallel()

	tr := service.NewTranslator(testLogger(), &fixedStrategy{
		name: "llm",
		sql:  "```sql\nSELECT title FROM movies LIMIT 5;\n```",
	})

	sql, _, err := tr.Translate(context.Background(), "five movies")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	if sql != "SELECT title FROM movies LIMIT 5" {
		t.Errorf("sql = %q", sql)
	}
}

func TestTranslator_EmptyQuestion(t *testing.T) {
	t.Parallel()

	tr := service.NewTranslator(testLogger(), &fixedStrategy{name: "any", sql: "SELECT 1"})

	if _, _, err := tr.Translate(context.Background(), "   "); !errors.Is(err, models.ErrNoTranslation) {
		t.Errorf("err = %v, want ErrNoTranslation", err)
	}
}
