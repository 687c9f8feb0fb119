package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// PatternStrategy translates common question shapes with a fixed keyword
// table. It requires no network or API key, so it backs the Gemini
// strategy and is the only strategy on deployments without one. Keywords
// cover English and Spanish phrasings.
type PatternStrategy struct{}

// NewPatternStrategy creates the strategy.
func NewPatternStrategy() *PatternStrategy { return &PatternStrategy{} }

// Name implements TranslationStrategy.
func (p *PatternStrategy) Name() string { return "patterns" }

const defaultPatternLimit = 10

var numberRe = regexp.MustCompile(`\d+`)

// extractNumber pulls the first number out of a question ("top 5" yields
// 5). Returns the default limit when there is none.
func extractNumber(question string) int {
	if m := numberRe.FindString(question); m != "" {
		var n int
		if _, err := fmt.Sscanf(m, "%d", &n); err == nil && n > 0 {
			return n
		}
	}

	return defaultPatternLimit
}

// genreAliases maps question keywords to canonical genre names.
var genreAliases = []struct {
	keyword string
	genre   string
}{
	{"science fiction", "Science Fiction"},
	{"ciencia ficción", "Science Fiction"},
	{"sci-fi", "Science Fiction"},
	{"tv movie", "TV Movie"},
	{"comedy", "Comedy"},
	{"comedia", "Comedy"},
	{"action", "Action"},
	{"acción", "Action"},
	{"drama", "Drama"},
	{"horror", "Horror"},
	{"terror", "Horror"},
	{"thriller", "Thriller"},
	{"romance", "Romance"},
	{"romántica", "Romance"},
	{"adventure", "Adventure"},
	{"aventura", "Adventure"},
	{"animation", "Animation"},
	{"animación", "Animation"},
	{"documentary", "Documentary"},
	{"documental", "Documentary"},
	{"fantasy", "Fantasy"},
	{"fantasía", "Fantasy"},
	{"mystery", "Mystery"},
	{"misterio", "Mystery"},
	{"crime", "Crime"},
	{"crimen", "Crime"},
	{"war", "War"},
	{"guerra", "War"},
	{"western", "Western"},
	{"family", "Family"},
	{"familiar", "Family"},
	{"music", "Music"},
	{"música", "Music"},
	{"history", "History"},
	{"historia", "History"},
}

// detectGenre returns the first genre whose alias appears in the
// question. Multi-word aliases sort first so "science fiction" beats
// "fiction"-adjacent noise.
func detectGenre(question string) (string, bool) {
	for _, a := range genreAliases {
		if strings.Contains(question, a.keyword) {
			return a.genre, true
		}
	}

	return "", false
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}

	return false
}

// Translate implements TranslationStrategy. It never fails: any question
// that matches no pattern gets the top-rated default so the endpoint
// stays useful without Gemini.
func (p *PatternStrategy) Translate(_ context.Context, question string) (string, error) {
	q := strings.ToLower(question)
	limit := extractNumber(q)
	genre, hasGenre := detectGenre(q)

	switch {
	case containsAny(q, "distribution", "distribución") && containsAny(q, "genre", "género"):
		return fmt.Sprintf(`SELECT g.name, COUNT(DISTINCT mg.movie_id) AS movie_count
			FROM genres g
			LEFT JOIN movie_genres mg ON g.genre_id = mg.genre_id
			GROUP BY g.name
			ORDER BY movie_count DESC
			LIMIT %d`, limit), nil

	case hasGenre && containsAny(q, "how many", "cuántas", "cuantas", "count"):
		return fmt.Sprintf(`SELECT COUNT(*) AS total_movies
			FROM movie_genres mg
			JOIN genres g ON mg.genre_id = g.genre_id
			WHERE g.name = '%s'`, genre), nil

	case containsAny(q, "genre", "género", "géneros") && containsAny(q, "top", "popular"):
		return `SELECT g.name, COUNT(mg.movie_id) AS movie_count,
				AVG(m.vote_count) AS avg_votes
			FROM genres g
			LEFT JOIN movie_genres mg ON g.genre_id = mg.genre_id
			LEFT JOIN movies m ON mg.movie_id = m.movie_id
			GROUP BY g.name
			ORDER BY avg_votes DESC
			LIMIT 5`, nil

	case containsAny(q, "genres", "géneros", "available"):
		return `SELECT name FROM genres ORDER BY name`, nil

	case hasGenre:
		return fmt.Sprintf(`SELECT m.title, m.vote_average, m.vote_count
			FROM movies m
			JOIN movie_genres mg ON m.movie_id = mg.movie_id
			JOIN genres g ON mg.genre_id = g.genre_id
			WHERE g.name = '%s'
			ORDER BY m.vote_count DESC
			LIMIT %d`, genre, limit), nil

	case containsAny(q, "budget", "presupuesto"):
		return fmt.Sprintf(`SELECT title, budget FROM movies
			WHERE budget > 0 ORDER BY budget DESC LIMIT %d`, limit), nil

	case containsAny(q, "revenue", "recauda", "taquilla", "box office"):
		return fmt.Sprintf(`SELECT title, revenue FROM movies
			WHERE revenue > 0 ORDER BY revenue DESC LIMIT %d`, limit), nil

	case containsAny(q, "votes", "votos", "votad"):
		return fmt.Sprintf(`SELECT title, vote_count FROM movies
			WHERE vote_count IS NOT NULL ORDER BY vote_count DESC LIMIT %d`, limit), nil

	case containsAny(q, "popular"):
		return fmt.Sprintf(`SELECT title, popularity FROM movies
			WHERE popularity IS NOT NULL ORDER BY popularity DESC LIMIT %d`, limit), nil

	case containsAny(q, "shortest", "corta"):
		return fmt.Sprintf(`SELECT title, runtime FROM movies
			WHERE runtime IS NOT NULL ORDER BY runtime ASC LIMIT %d`, limit), nil

	case containsAny(q, "longest", "runtime", "duration", "duración", "larga"):
		return fmt.Sprintf(`SELECT title, runtime FROM movies
			WHERE runtime IS NOT NULL ORDER BY runtime DESC LIMIT %d`, limit), nil

	case containsAny(q, "year", "año", "estreno", "released", "recent", "newest", "latest"):
		// A year-shaped number is a filter, not a limit.
		if limit >= 1888 && limit <= 2030 {
			return fmt.Sprintf(`SELECT title, release_date FROM movies
				WHERE EXTRACT(YEAR FROM release_date) = %d
				ORDER BY release_date`, limit), nil
		}

		return fmt.Sprintf(`SELECT title, EXTRACT(YEAR FROM release_date) AS year
			FROM movies WHERE release_date IS NOT NULL
			ORDER BY release_date DESC LIMIT %d`, limit), nil

	default:
		return fmt.Sprintf(`SELECT title, vote_average FROM movies
			WHERE vote_average IS NOT NULL ORDER BY vote_average DESC LIMIT %d`, limit), nil
	}
}
