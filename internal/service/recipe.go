package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartrecipe/backend/internal/model"
)

// listResultLimit caps the plain listing endpoint.
const listResultLimit = 50

// topFavoritesLimit caps the anonymous favorites fallback.
const topFavoritesLimit = 10

// RecipeService handles recipe queries, matching, suggestions, and the
// rating/favorite aggregator.
//
// Rating and favorite updates are load-mutate-save sequences over the whole
// recipe row with no optimistic concurrency check; concurrent writes to the
// same recipe are last-write-wins. This mirrors the document-store contract
// the API was built around.
type RecipeService struct {
	db       *gorm.DB
	cache    *SuggestionCache
	strategy string
}

// NewRecipeService creates a new RecipeService instance. cache may be nil;
// strategy is one of StrategyWeighted or StrategyLegacy.
func NewRecipeService(db *gorm.DB, cache *SuggestionCache, strategy string) *RecipeService {
	if strategy == "" {
		strategy = StrategyWeighted
	}
	return &RecipeService{db: db, cache: cache, strategy: strategy}
}

// ListFilters are the discrete filters for the plain recipe listing.
type ListFilters struct {
	Difficulty  string
	Cuisine     string
	MaxCookTime int
	Dietary     []string
}

// ListRecipes returns recipes matching the filters, capped at 50.
// Cuisine matches case-insensitively by containment; dietary keeps recipes
// carrying at least one requested tag.
func (s *RecipeService) ListRecipes(ctx context.Context, filters ListFilters) ([]model.Recipe, error) {
	query := s.db.WithContext(ctx)
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if filters.Cuisine != "" {
		query = query.Where("LOWER(cuisine) LIKE ?", "%"+strings.ToLower(filters.Cuisine)+"%")
	}
	if filters.MaxCookTime > 0 {
		query = query.Where("cook_time_min <= ?", filters.MaxCookTime)
	}

	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	recipes = FilterByDietary(recipes, filters.Dietary)
	if len(recipes) > listResultLimit {
		recipes = recipes[:listResultLimit]
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe creates a new recipe.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// MatchRecipes loads candidates (pre-filtered by dietary tags) and scores
// them against the user's ingredient set.
func (s *RecipeService) MatchRecipes(ctx context.Context, ingredients, dietary []string, strict bool) ([]ScoredRecipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, err
	}
	candidates := FilterByDietary(recipes, dietary)
	return ScoreRecipes(candidates, ingredients, strict), nil
}

// Suggestions loads recipes matching the filters and ranks them by the
// configured strategy, consulting the cache first.
func (s *RecipeService) Suggestions(ctx context.Context, filters SuggestionFilters) ([]RankedRecipe, error) {
	if ranked, ok := s.cache.Get(ctx, s.strategy, filters); ok {
		return ranked, nil
	}

	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, err
	}

	ranked := RankSuggestions(FilterSuggestions(recipes, filters), s.strategy)
	s.cache.Set(ctx, s.strategy, filters, ranked)
	return ranked, nil
}

// Strategy reports the active suggestion ranking policy.
func (s *RecipeService) Strategy() string {
	return s.strategy
}

// RatingSummary is the aggregate state returned after a rating write.
type RatingSummary struct {
	AvgRating    float64 `json:"avgRating"`
	TotalRatings int     `json:"totalRatings"`
}

// RateRecipe upserts the user's rating and recomputes the aggregate.
// Re-rating replaces the stored value, never appends a second entry.
func (s *RecipeService) RateRecipe(ctx context.Context, id uuid.UUID, userID string, rating int) (*RatingSummary, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if userID == "" {
		return nil, ErrMissingUserID
	}

	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := false
	for i, ur := range recipe.UserRatings {
		if ur.UserID == userID {
			recipe.UserRatings[i].Rating = rating
			updated = true
			break
		}
	}
	if !updated {
		recipe.UserRatings = append(recipe.UserRatings, model.UserRating{UserID: userID, Rating: rating})
	}

	// The flat list is always the projection of the per-user records.
	recipe.Ratings = make(model.JSONBIntArray, len(recipe.UserRatings))
	for i, ur := range recipe.UserRatings {
		recipe.Ratings[i] = ur.Rating
	}

	if err := s.saveAggregates(ctx, recipe); err != nil {
		return nil, err
	}

	return &RatingSummary{
		AvgRating:    recipe.AvgRating(),
		TotalRatings: len(recipe.Ratings),
	}, nil
}

// AddFavorite marks the recipe as a favorite of the user. Favoriting twice
// is a no-op; the count is always the size of the favoriting-user set.
func (s *RecipeService) AddFavorite(ctx context.Context, id uuid.UUID, userID string) (int, error) {
	if userID == "" {
		return 0, ErrMissingUserID
	}

	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return 0, err
	}

	for _, u := range recipe.FavoritesUsers {
		if u == userID {
			return recipe.Favorites, nil
		}
	}

	recipe.FavoritesUsers = append(recipe.FavoritesUsers, userID)
	recipe.Favorites = len(recipe.FavoritesUsers)

	if err := s.saveAggregates(ctx, recipe); err != nil {
		return 0, err
	}
	return recipe.Favorites, nil
}

// RemoveFavorite filters the user out of the favoriting set and recomputes
// the count from the remaining set size.
func (s *RecipeService) RemoveFavorite(ctx context.Context, id uuid.UUID, userID string) (int, error) {
	if userID == "" {
		return 0, ErrMissingUserID
	}

	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return 0, err
	}

	remaining := make(model.JSONBStringArray, 0, len(recipe.FavoritesUsers))
	for _, u := range recipe.FavoritesUsers {
		if u != userID {
			remaining = append(remaining, u)
		}
	}
	recipe.FavoritesUsers = remaining
	recipe.Favorites = len(remaining)

	if err := s.saveAggregates(ctx, recipe); err != nil {
		return 0, err
	}
	return recipe.Favorites, nil
}

// FavoritesForUser returns the recipes the user has favorited.
func (s *RecipeService) FavoritesForUser(ctx context.Context, userID string) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, err
	}

	favorites := make([]model.Recipe, 0)
	for _, recipe := range recipes {
		for _, u := range recipe.FavoritesUsers {
			if u == userID {
				favorites = append(favorites, recipe)
				break
			}
		}
	}
	return favorites, nil
}

// TopFavorites returns the ten most-favorited recipes, the fallback for
// favorites listing without a user.
func (s *RecipeService) TopFavorites(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Order("favorites DESC").
		Limit(topFavoritesLimit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// SetImageURL records the stored image location on the recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	recipe.ImageURL = url
	return s.db.WithContext(ctx).Save(recipe).Error
}

func (s *RecipeService) saveAggregates(ctx context.Context, recipe *model.Recipe) error {
	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
