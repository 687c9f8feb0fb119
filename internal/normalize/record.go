package normalize

import (
	"strings"

	"github.com/cinelake/cinelake/internal/models"
)

// Validate decides whether a raw record is admissible for storage: it
// must carry a nonzero integer identifier and a non-blank title. It
// returns the identifier and the sentinel reason on rejection.
func Validate(raw models.RawRecord) (int, error) {
	id, ok := intValue(raw["id"])
	if !ok || id == 0 {
		return 0, models.ErrMissingID
	}

	if String(raw["title"], maxShortText) == nil {
		return int(id), models.ErrBlankTitle
	}

	return int(id), nil
}

// Record maps a validated raw record to a typed Movie. Field-level
// failures degrade to unknown; Record itself only fails for the reasons
// Validate fails.
func Record(raw models.RawRecord) (*models.Movie, error) {
	id, err := Validate(raw)
	if err != nil {
		return nil, err
	}

	m := &models.Movie{
		ID:                  id,
		Title:               *String(raw["title"], maxShortText),
		ReleaseDate:         Date(raw["release_date"]),
		Runtime:             Integer(raw["runtime"], 0),
		VoteAverage:         Float(raw["vote_average"], 0.0, 10.0, 1),
		VoteCount:           Integer(raw["vote_count"], 0),
		OriginCountry:       CodeList(raw["origin_country"]),
		Overview:            String(raw["overview"], maxOverview),
		Revenue:             BigInt(raw["revenue"]),
		Budget:              BigInt(raw["budget"]),
		Adult:               Bool(raw["adult"]),
		CollectionName:      collectionName(raw["belongs_to_collection"]),
		OriginalLanguage:    String(raw["original_language"], maxLanguage),
		OriginalTitle:       String(raw["original_title"], maxOrigTitle),
		Popularity:          Float(raw["popularity"], 0.0, 0, 2),
		ProductionCompanies: NamedList(raw["production_companies"]),
		ProductionCountries: NamedList(raw["production_countries"]),
		SpokenLanguages:     NamedList(raw["spoken_languages"]),
		Status:              String(raw["status"], maxStatus),
		Tagline:             String(raw["tagline"], maxTagline),
		Genres:              Genres(raw),
	}

	return m, nil
}

// Genres extracts the identified, named genre entries from a raw record.
// Entries missing an integer id or a non-blank name are dropped.
func Genres(raw models.RawRecord) []models.Genre {
	items, ok := raw["genres"].([]any)
	if !ok {
		return nil
	}

	genres := make([]models.Genre, 0, len(items))

	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		id, ok := intValue(obj["id"])
		if !ok {
			continue
		}

		name, _ := obj["name"].(string)

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		genres = append(genres, models.Genre{ID: int(id), Name: name})
	}

	if len(genres) == 0 {
		return nil
	}

	return genres
}

// collectionName pulls the display name out of a nested collection object.
func collectionName(v any) *string {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	return String(obj["name"], maxShortText)
}
