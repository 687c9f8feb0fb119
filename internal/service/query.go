package service

import (
	"context"

	"github.com/cinelake/cinelake/internal/models"
)

// askQueryStore is the minimal store interface consumed by AskService.
type askQueryStore interface {
	RunSelect(ctx context.Context, query string) ([]string, [][]any, error)
}

// AskService answers natural-language questions about the catalog by
// translating them to SQL and running the result read-only.
type AskService struct {
	translator *Translator
	store      askQueryStore
}

// NewAskService creates an AskService.
func NewAskService(translator *Translator, store askQueryStore) *AskService {
	return &AskService{translator: translator, store: store}
}

// Ask translates and executes one question. The response carries the
// generated SQL and the strategy that produced it so callers can judge
// how the answer was derived.
func (s *AskService) Ask(ctx context.Context, question string) (*models.AskResponse, error) {
	sql, strategy, err := s.translator.Translate(ctx, question)
	if err != nil {
		return nil, err
	}

	columns, rows, err := s.store.RunSelect(ctx, sql)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]any, len(columns))
		for i, col := range columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}

	return &models.AskResponse{
		Question: question,
		SQL:      sql,
		Strategy: strategy,
		Columns:  columns,
		Rows:     out,
	}, nil
}
