package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartrecipe/backend/internal/model"
	"github.com/smartrecipe/backend/internal/service"
	"github.com/smartrecipe/backend/internal/testhelpers"
)

// TestRecipeFlowPostgres runs the match-rate-favorite cycle against a real
// postgres instance, exercising the JSONB column round trips the sqlite
// unit tests cannot fully cover.
func TestRecipeFlowPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()

	recipes := service.NewRecipeService(db, nil, service.StrategyWeighted)

	stirFry := testhelpers.NewRecipe("Chicken Stir Fry", "chicken", "bell pepper", "soy sauce")
	stirFry.Dietary = model.JSONBStringArray{}
	stew := testhelpers.NewRecipe("Beef Stew", "beef", "potato", "carrot")
	seeded := testhelpers.SeedRecipes(t, db, stirFry, stew)

	// JSONB ingredient lists survive a round trip through postgres.
	loaded, err := recipes.GetRecipe(ctx, seeded[0].ID)
	require.NoError(t, err)
	require.Len(t, loaded.Ingredients, 3)
	assert.Equal(t, "chicken", loaded.Ingredients[0].Name)

	matches, err := recipes.MatchRecipes(ctx, []string{"chicken", "bell pepper"}, nil, false)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Chicken Stir Fry", matches[0].Title)
	assert.InDelta(t, 2.0/3.0, matches[0].MatchScore, 1e-9)

	summary, err := recipes.RateRecipe(ctx, seeded[0].ID, "u1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, summary.AvgRating)
	assert.Equal(t, 1, summary.TotalRatings)

	summary, err = recipes.RateRecipe(ctx, seeded[0].ID, "u1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, summary.AvgRating)
	assert.Equal(t, 1, summary.TotalRatings)

	count, err := recipes.AddFavorite(ctx, seeded[0].ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = recipes.AddFavorite(ctx, seeded[0].ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	favorites, err := recipes.FavoritesForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Chicken Stir Fry", favorites[0].Title)

	ranked, err := recipes.Suggestions(ctx, service.SuggestionFilters{})
	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "Chicken Stir Fry", ranked[0].Title)
}

func TestAuthFlowPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()

	auth := service.NewAuthService(db, "integration-secret", 0)

	user, token, err := auth.Signup(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = auth.Signup(ctx, "Alice Again", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	_, loginToken, err := auth.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
}
