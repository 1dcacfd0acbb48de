package service

import (
	"sort"
	"strings"

	"github.com/smartrecipe/backend/internal/model"
)

// matchResultLimit caps the match result set after sorting.
const matchResultLimit = 20

// ScoredRecipe is a recipe annotated with its ingredient-overlap score and
// the user ingredients that matched.
type ScoredRecipe struct {
	model.Recipe
	MatchScore         float64  `json:"matchScore"`
	MatchedIngredients []string `json:"matchedIngredients"`
}

// ScoreRecipes scores candidate recipes against the user's ingredient set.
//
// A user ingredient matches a recipe ingredient when either lowercased
// string contains the other. With strict on, recipes missing any user
// ingredient are excluded entirely. score = matches / max(|recipe|, |user|);
// zero-score recipes are dropped, results are sorted descending by score
// (ties keep store order) and capped at matchResultLimit.
func ScoreRecipes(recipes []model.Recipe, userIngredients []string, strict bool) []ScoredRecipe {
	normalized := make([]string, 0, len(userIngredients))
	for _, ing := range userIngredients {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing != "" {
			normalized = append(normalized, ing)
		}
	}

	scored := make([]ScoredRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIngredients := make([]string, len(recipe.Ingredients))
		for i, ing := range recipe.Ingredients {
			recipeIngredients[i] = strings.ToLower(ing.Name)
		}

		matched := make([]string, 0, len(normalized))
		for _, ui := range normalized {
			for _, ri := range recipeIngredients {
				if strings.Contains(ri, ui) || strings.Contains(ui, ri) {
					matched = append(matched, ui)
					break
				}
			}
		}

		// Strict matching requires every user ingredient to be found.
		if strict && len(matched) < len(normalized) {
			continue
		}

		denom := len(recipeIngredients)
		if len(normalized) > denom {
			denom = len(normalized)
		}
		if denom == 0 {
			continue
		}

		score := float64(len(matched)) / float64(denom)
		if score <= 0 {
			continue
		}

		scored = append(scored, ScoredRecipe{
			Recipe:             recipe,
			MatchScore:         score,
			MatchedIngredients: matched,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if len(scored) > matchResultLimit {
		scored = scored[:matchResultLimit]
	}
	return scored
}

// FilterByDietary keeps recipes carrying at least one of the requested
// dietary tags. An empty request passes everything through.
func FilterByDietary(recipes []model.Recipe, dietary []string) []model.Recipe {
	if len(dietary) == 0 {
		return recipes
	}
	filtered := make([]model.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		for _, tag := range dietary {
			if recipe.HasDietaryTag(tag) {
				filtered = append(filtered, recipe)
				break
			}
		}
	}
	return filtered
}
