package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartrecipe/backend/internal/model"
)

func recipeWithIngredients(title string, names ...string) model.Recipe {
	list := make(model.JSONBIngredients, len(names))
	for i, name := range names {
		list[i] = model.Ingredient{Name: name}
	}
	return model.Recipe{Title: title, Ingredients: list}
}

func TestScoreRecipesStrictInclusion(t *testing.T) {
	recipe := recipeWithIngredients("Chicken Curry", "chicken", "tomato", "onion")

	results := ScoreRecipes([]model.Recipe{recipe}, []string{"chicken", "tomato"}, true)

	require.Len(t, results, 1)
	assert.InDelta(t, 2.0/3.0, results[0].MatchScore, 1e-9)
	assert.Equal(t, []string{"chicken", "tomato"}, results[0].MatchedIngredients)
}

func TestScoreRecipesStrictExclusion(t *testing.T) {
	recipe := recipeWithIngredients("Chicken Curry", "chicken", "tomato", "onion")

	// "beef" has no match, so strict mode drops the recipe entirely.
	results := ScoreRecipes([]model.Recipe{recipe}, []string{"chicken", "beef"}, true)
	assert.Empty(t, results)

	// Flexible mode keeps it with the partial score.
	results = ScoreRecipes([]model.Recipe{recipe}, []string{"chicken", "beef"}, false)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0/3.0, results[0].MatchScore, 1e-9)
	assert.Equal(t, []string{"chicken"}, results[0].MatchedIngredients)
}

func TestScoreRecipesSubstringMatching(t *testing.T) {
	recipe := recipeWithIngredients("Roast", "chicken breast", "red onion")

	// The user ingredient is a substring of the recipe's, and vice versa.
	results := ScoreRecipes([]model.Recipe{recipe}, []string{"chicken", "red onion with skin"}, true)

	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].MatchScore, 1e-9)
}

func TestScoreRecipesZeroScoreExcluded(t *testing.T) {
	recipe := recipeWithIngredients("Salad", "lettuce", "cucumber")

	results := ScoreRecipes([]model.Recipe{recipe}, []string{"beef"}, false)
	assert.Empty(t, results)
}

func TestScoreRecipesDenominator(t *testing.T) {
	recipe := recipeWithIngredients("Simple", "rice")

	// More user ingredients than recipe ingredients: user count divides.
	results := ScoreRecipes([]model.Recipe{recipe}, []string{"rice", "beef", "pork"}, false)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0/3.0, results[0].MatchScore, 1e-9)
}

func TestScoreRecipesScoreBounds(t *testing.T) {
	recipes := []model.Recipe{
		recipeWithIngredients("A", "chicken", "rice"),
		recipeWithIngredients("B", "chicken"),
		recipeWithIngredients("C", "tofu", "broccoli", "soy sauce"),
	}

	results := ScoreRecipes(recipes, []string{"chicken", "rice"}, false)
	for _, r := range results {
		assert.Greater(t, r.MatchScore, 0.0, r.Title)
		assert.LessOrEqual(t, r.MatchScore, 1.0, r.Title)
	}
}

func TestScoreRecipesOrderingAndCap(t *testing.T) {
	recipes := make([]model.Recipe, 0, 30)
	for i := 0; i < 30; i++ {
		// Padding ingredients lower the score as i grows.
		names := []string{"chicken"}
		for j := 0; j < i; j++ {
			names = append(names, fmt.Sprintf("filler-%d", j))
		}
		recipes = append(recipes, recipeWithIngredients(fmt.Sprintf("r%d", i), names...))
	}

	results := ScoreRecipes(recipes, []string{"chicken"}, false)

	require.Len(t, results, matchResultLimit)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].MatchScore, results[i].MatchScore)
	}
	assert.Equal(t, "r0", results[0].Title)
}

func TestScoreRecipesTiesKeepStoreOrder(t *testing.T) {
	recipes := []model.Recipe{
		recipeWithIngredients("first", "chicken", "rice"),
		recipeWithIngredients("second", "chicken", "pasta"),
	}

	results := ScoreRecipes(recipes, []string{"chicken"}, false)

	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Title)
	assert.Equal(t, "second", results[1].Title)
}

func TestScoreRecipesEmptyUserSet(t *testing.T) {
	recipe := recipeWithIngredients("Anything", "chicken")

	assert.Empty(t, ScoreRecipes([]model.Recipe{recipe}, nil, false))
	assert.Empty(t, ScoreRecipes([]model.Recipe{recipe}, []string{"  "}, true))
}

func TestFilterByDietary(t *testing.T) {
	veg := recipeWithIngredients("Veg", "tofu")
	veg.Dietary = model.JSONBStringArray{"vegetarian"}
	vegan := recipeWithIngredients("Vegan", "beans")
	vegan.Dietary = model.JSONBStringArray{"vegan", "gluten-free"}
	meat := recipeWithIngredients("Meat", "beef")

	all := []model.Recipe{veg, vegan, meat}

	assert.Len(t, FilterByDietary(all, nil), 3)

	filtered := FilterByDietary(all, []string{"vegetarian", "vegan"})
	require.Len(t, filtered, 2)
	assert.Equal(t, "Veg", filtered[0].Title)
	assert.Equal(t, "Vegan", filtered[1].Title)
}
