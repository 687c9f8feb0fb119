package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// schemaPrompt describes the queryable schema to the model. Kept to the
// three tables the translator is allowed to touch.
const schemaPrompt = `You translate questions about a movie catalog into PostgreSQL.

Schema:
  movies(movie_id, title, release_date, runtime, vote_average, vote_count,
         origin_country, overview, revenue, budget, adult, collection_name,
         original_language, original_title, popularity, production_companies,
         production_countries, spoken_languages, status, tagline)
  genres(genre_id, name)
  movie_genres(movie_id, genre_id)

Rules:
- Respond with exactly one SELECT statement and nothing else.
- Never write data. No INSERT, UPDATE, DELETE, DDL or semicolons.
- Genre and list columns (production_companies, spoken_languages,
  origin_country) are comma-separated text; match them with ILIKE.
- When the question implies a count or average, return that aggregate.

Question: `

const geminiTimeout = 15 * time.Second

// GeminiStrategy translates questions with a hosted Gemini model. It is
// the preferred strategy; the pattern fallback covers outages and
// deployments without an API key.
type GeminiStrategy struct {
	client *genai.Client
	model  string
}

// NewGeminiStrategy creates the strategy and its underlying client.
func NewGeminiStrategy(ctx context.Context, apiKey, model string) (*GeminiStrategy, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiStrategy{client: client, model: model}, nil
}

// Name implements TranslationStrategy.
func (g *GeminiStrategy) Name() string { return "gemini" }

// Translate implements TranslationStrategy.
func (g *GeminiStrategy) Translate(ctx context.Context, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx, genai.Text(schemaPrompt+question))
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty model response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	sql := strings.TrimSpace(b.String())
	if sql == "" {
		return "", fmt.Errorf("model response contained no text")
	}

	return sql, nil
}

// Close releases the underlying client.
func (g *GeminiStrategy) Close() error {
	return g.client.Close()
}
