package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartrecipe/backend/internal/middleware"
	"github.com/smartrecipe/backend/internal/model"
	"github.com/smartrecipe/backend/internal/service"
)

// maxImageUploadBytes bounds recipe image uploads.
const maxImageUploadBytes = 5 << 20

type RecipeHandler struct {
	recipes     *service.RecipeService
	images      *service.ImageService
	authService *service.AuthService
}

func NewRecipeHandler(recipes *service.RecipeService, images *service.ImageService, authService *service.AuthService) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		images:      images,
		authService: authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/favorites", h.ListFavorites)
		recipes.GET("/suggestions", h.Suggestions)
		recipes.POST("/match", h.MatchRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		recipes.POST("/:id/rate", h.RateRecipe)
		recipes.POST("/:id/favorite", h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", h.UnfavoriteRecipe)
		recipes.POST("/:id/image", middleware.AuthMiddleware(h.authService), h.UploadImage)
	}
}

// ListRecipes returns recipes matching the discrete query filters.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filters := service.ListFilters{
		Difficulty: c.Query("difficulty"),
		Cuisine:    c.Query("cuisine"),
	}
	if raw := c.Query("maxCookTime"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondBadRequest(c, fmt.Errorf("maxCookTime must be a non-negative integer"))
			return
		}
		filters.MaxCookTime = n
	}
	if raw := c.Query("dietary"); raw != "" {
		filters.Dietary = splitCSV(raw)
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, fmt.Errorf("invalid recipe id"))
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		respondBadRequest(c, err)
		return
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": created})
}

// MatchRecipes scores stored recipes against the submitted ingredient set.
func (h *RecipeHandler) MatchRecipes(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	matches, err := h.recipes.MatchRecipes(c.Request.Context(), req.Ingredients, req.Dietary, req.StrictMatch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"data":        matches,
		"strictMatch": req.StrictMatch,
	})
}

// Suggestions ranks recipes by popularity under the configured strategy.
func (h *RecipeHandler) Suggestions(c *gin.Context) {
	filters := service.SuggestionFilters{
		Dietary:    c.Query("dietary"),
		Cuisine:    c.Query("cuisine"),
		Difficulty: c.Query("difficulty"),
	}

	ranked, err := h.recipes.Suggestions(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"data":     ranked,
		"strategy": h.recipes.Strategy(),
	})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	summary, err := h.recipes.RateRecipe(c.Request.Context(), id, req.UserID, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"avgRating":    summary.AvgRating,
		"totalRatings": summary.TotalRatings,
	})
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	h.toggleFavorite(c, h.recipes.AddFavorite)
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	h.toggleFavorite(c, h.recipes.RemoveFavorite)
}

func (h *RecipeHandler) toggleFavorite(c *gin.Context, op favoriteOp) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	count, err := op(c.Request.Context(), id, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "favorites": count})
}

// ListFavorites returns the user's favorited recipes, or the most-favorited
// recipes overall when no userId is supplied.
func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID := c.Query("userId")

	var (
		recipes []model.Recipe
		err     error
	)
	if userID != "" {
		recipes, err = h.recipes.FavoritesForUser(c.Request.Context(), userID)
	} else {
		recipes, err = h.recipes.TopFavorites(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": recipes})
}

// UploadImage stores a recipe image in object storage and records its URL.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "image storage is not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respondBadRequest(c, fmt.Errorf("image file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxImageUploadBytes {
		respondBadRequest(c, fmt.Errorf("image exceeds the %dMB limit", maxImageUploadBytes>>20))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes))
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), recipe.ID, data, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.recipes.SetImageURL(c.Request.Context(), recipe.ID, url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "imageUrl": url})
}

type favoriteOp func(ctx context.Context, id uuid.UUID, userID string) (int, error)

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
