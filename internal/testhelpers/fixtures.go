package testhelpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/smartrecipe/backend/internal/model"
)

// NewRecipe builds a recipe with the given title and ingredient names.
func NewRecipe(title string, ingredients ...string) model.Recipe {
	list := make(model.JSONBIngredients, len(ingredients))
	for i, name := range ingredients {
		list[i] = model.Ingredient{Name: name}
	}
	return model.Recipe{
		Title:       title,
		Ingredients: list,
		Difficulty:  "easy",
		Servings:    1,
	}
}

// SeedRecipes inserts recipes and returns them with assigned IDs.
func SeedRecipes(t *testing.T, db *gorm.DB, recipes ...model.Recipe) []model.Recipe {
	t.Helper()
	for i := range recipes {
		if err := db.Create(&recipes[i]).Error; err != nil {
			t.Fatalf("failed to seed recipe %q: %v", recipes[i].Title, err)
		}
	}
	return recipes
}
