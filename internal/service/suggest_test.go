package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartrecipe/backend/internal/model"
)

func ratedRecipe(title string, ratings []int, favorites int) model.Recipe {
	recipe := recipeWithIngredients(title, "something")
	recipe.Ratings = model.JSONBIntArray(ratings)
	recipe.UserRatings = make(model.JSONBUserRatings, len(ratings))
	for i, r := range ratings {
		recipe.UserRatings[i] = model.UserRating{UserID: fmt.Sprintf("u%d", i), Rating: r}
	}
	recipe.Favorites = favorites
	users := make(model.JSONBStringArray, favorites)
	for i := range users {
		users[i] = fmt.Sprintf("fav%d", i)
	}
	recipe.FavoritesUsers = users
	return recipe
}

func TestWeightedScoreComponents(t *testing.T) {
	// No ratings: rating and popularity components are zero.
	unrated := RankedRecipe{Recipe: ratedRecipe("unrated", nil, 0)}
	assert.InDelta(t, 0, weightedScore(unrated), 1e-9)

	// Ten or more favorites caps the favorites component at 1.
	popular := ratedRecipe("popular", nil, 25)
	entry := RankedRecipe{Recipe: popular}
	assert.InDelta(t, favoritesWeight, weightedScore(entry), 1e-9)

	// Twenty or more ratings caps the popularity component at 1.
	ratings := make([]int, 40)
	for i := range ratings {
		ratings[i] = 5
	}
	wellRated := ratedRecipe("well-rated", ratings, 0)
	entry = RankedRecipe{
		Recipe:      wellRated,
		AvgRating:   wellRated.AvgRating(),
		RatingCount: len(wellRated.Ratings),
	}
	assert.InDelta(t, ratingWeight+popularityWeight, weightedScore(entry), 1e-9)
}

func TestRankSuggestionsWeighted(t *testing.T) {
	low := ratedRecipe("low", []int{2}, 0)
	high := ratedRecipe("high", []int{5, 5, 5}, 12)
	mid := ratedRecipe("mid", []int{4, 4}, 2)

	ranked := RankSuggestions([]model.Recipe{low, high, mid}, StrategyWeighted)

	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].Title)
	assert.Equal(t, "mid", ranked[1].Title)
	assert.Equal(t, "low", ranked[2].Title)

	assert.InDelta(t, 5.0, ranked[0].AvgRating, 1e-9)
	assert.Equal(t, 3, ranked[0].RatingCount)
}

func TestRankSuggestionsWeightedKeepsUnrated(t *testing.T) {
	unrated := ratedRecipe("unrated", nil, 0)
	rated := ratedRecipe("rated", []int{3}, 0)

	ranked := RankSuggestions([]model.Recipe{unrated, rated}, StrategyWeighted)

	// No cap and no rating floor: the full filtered set comes back.
	require.Len(t, ranked, 2)
	assert.Equal(t, "rated", ranked[0].Title)
	assert.InDelta(t, 0, ranked[1].SuggestionScore, 1e-9)
}

func TestRankSuggestionsWeightedNoCap(t *testing.T) {
	recipes := make([]model.Recipe, 0, 25)
	for i := 0; i < 25; i++ {
		recipes = append(recipes, ratedRecipe(fmt.Sprintf("r%d", i), []int{4}, i))
	}

	ranked := RankSuggestions(recipes, StrategyWeighted)
	assert.Len(t, ranked, 25)
}

func TestRankSuggestionsLegacy(t *testing.T) {
	recipes := make([]model.Recipe, 0, 20)
	for i := 0; i < 18; i++ {
		recipes = append(recipes, ratedRecipe(fmt.Sprintf("rated-%d", i), []int{1 + i%5}, 0))
	}
	recipes = append(recipes, ratedRecipe("unrated", nil, 50))

	ranked := RankSuggestions(recipes, StrategyLegacy)

	// Unrated recipes never qualify, and output caps at 15.
	require.Len(t, ranked, legacySuggestionLimit)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].AvgRating, ranked[i].AvgRating)
	}
	for _, entry := range ranked {
		assert.GreaterOrEqual(t, entry.RatingCount, 1)
	}
}

func TestFilterSuggestionsCuisineAndDifficulty(t *testing.T) {
	italian := ratedRecipe("italian", nil, 0)
	italian.Cuisine = "Italian"
	italian.Difficulty = "easy"
	indian := ratedRecipe("indian", nil, 0)
	indian.Cuisine = "Indian"
	indian.Difficulty = "hard"

	all := []model.Recipe{italian, indian}

	filtered := FilterSuggestions(all, SuggestionFilters{Cuisine: "Italian"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "italian", filtered[0].Title)

	filtered = FilterSuggestions(all, SuggestionFilters{Difficulty: "hard"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "indian", filtered[0].Title)

	// Cuisine is exact here, unlike the listing endpoint's containment.
	assert.Empty(t, FilterSuggestions(all, SuggestionFilters{Cuisine: "ital"}))
}

func TestFilterSuggestionsDietary(t *testing.T) {
	veg := ratedRecipe("veg", nil, 0)
	veg.Dietary = model.JSONBStringArray{"vegetarian"}
	vegan := ratedRecipe("vegan", nil, 0)
	vegan.Dietary = model.JSONBStringArray{"vegan"}
	meat := ratedRecipe("meat", nil, 0)
	glutenFree := ratedRecipe("gf", nil, 0)
	glutenFree.Dietary = model.JSONBStringArray{"gluten-free"}

	all := []model.Recipe{veg, vegan, meat, glutenFree}

	// non-vegetarian excludes both vegetarian and vegan tags.
	filtered := FilterSuggestions(all, SuggestionFilters{Dietary: "non-vegetarian"})
	require.Len(t, filtered, 2)
	assert.Equal(t, "meat", filtered[0].Title)
	assert.Equal(t, "gf", filtered[1].Title)

	// Any other value requires the exact tag.
	filtered = FilterSuggestions(all, SuggestionFilters{Dietary: "vegan"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "vegan", filtered[0].Title)
}
