package service

import (
	"sort"

	"github.com/smartrecipe/backend/internal/model"
)

// Suggestion ranking strategies. Weighted is the default; legacy is the
// earlier average-rating-only policy, kept selectable via configuration.
const (
	StrategyWeighted = "weighted"
	StrategyLegacy   = "legacy"
)

// legacySuggestionLimit caps legacy-strategy output.
const legacySuggestionLimit = 15

// Weighted score composition and caps.
const (
	ratingWeight     = 0.5
	favoritesWeight  = 0.25
	popularityWeight = 0.25
	favoritesCap     = 10
	popularityCap    = 20
)

// RankedRecipe is a recipe annotated with its popularity ranking fields.
type RankedRecipe struct {
	model.Recipe
	AvgRating       float64 `json:"avgRating"`
	RatingCount     int     `json:"ratingCount"`
	SuggestionScore float64 `json:"suggestionScore"`
}

// SuggestionFilters narrows the candidate set before ranking.
type SuggestionFilters struct {
	Dietary    string
	Cuisine    string
	Difficulty string
}

// FilterSuggestions applies the discrete suggestion filters. Cuisine and
// difficulty are exact matches. The "non-vegetarian" dietary value excludes
// recipes tagged vegetarian or vegan; any other value requires that exact tag.
func FilterSuggestions(recipes []model.Recipe, filters SuggestionFilters) []model.Recipe {
	filtered := make([]model.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if filters.Cuisine != "" && recipe.Cuisine != filters.Cuisine {
			continue
		}
		if filters.Difficulty != "" && recipe.Difficulty != filters.Difficulty {
			continue
		}
		if filters.Dietary != "" {
			if filters.Dietary == "non-vegetarian" {
				if recipe.HasDietaryTag("vegetarian") || recipe.HasDietaryTag("vegan") {
					continue
				}
			} else if !recipe.HasDietaryTag(filters.Dietary) {
				continue
			}
		}
		filtered = append(filtered, recipe)
	}
	return filtered
}

// RankSuggestions orders recipes by popularity according to the strategy.
//
// Weighted computes 0.5·(avg/5) + 0.25·min(favorites/10, 1) +
// 0.25·(min(ratings, 20)/20), sorts descending and returns the full set.
// Legacy keeps only recipes with at least one rating, sorts by average
// rating alone, and caps at legacySuggestionLimit.
func RankSuggestions(recipes []model.Recipe, strategy string) []RankedRecipe {
	ranked := make([]RankedRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		entry := RankedRecipe{
			Recipe:      recipe,
			AvgRating:   recipe.AvgRating(),
			RatingCount: len(recipe.Ratings),
		}
		entry.SuggestionScore = weightedScore(entry)
		ranked = append(ranked, entry)
	}

	if strategy == StrategyLegacy {
		rated := make([]RankedRecipe, 0, len(ranked))
		for _, entry := range ranked {
			if entry.RatingCount >= 1 {
				rated = append(rated, entry)
			}
		}
		sort.SliceStable(rated, func(i, j int) bool {
			return rated[i].AvgRating > rated[j].AvgRating
		})
		if len(rated) > legacySuggestionLimit {
			rated = rated[:legacySuggestionLimit]
		}
		return rated
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SuggestionScore > ranked[j].SuggestionScore
	})
	return ranked
}

func weightedScore(entry RankedRecipe) float64 {
	ratingScore := entry.AvgRating / 5

	favoritesScore := float64(entry.Favorites) / favoritesCap
	if favoritesScore > 1 {
		favoritesScore = 1
	}

	count := entry.RatingCount
	if count > popularityCap {
		count = popularityCap
	}
	popularityScore := float64(count) / popularityCap

	return ratingWeight*ratingScore + favoritesWeight*favoritesScore + popularityWeight*popularityScore
}
