package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartrecipe/backend/internal/dictionary"
	"github.com/smartrecipe/backend/internal/service"
)

// maxDetectImageBytes bounds images forwarded to the classifier.
const maxDetectImageBytes = 8 << 20

type IngredientHandler struct {
	classifier *service.ClassifierService
}

func NewIngredientHandler(classifier *service.ClassifierService) *IngredientHandler {
	return &IngredientHandler{classifier: classifier}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.POST("/detect", h.Detect)
		ingredients.GET("/substitutions", h.Substitutions)
	}
}

// Detect maps classifier labels to canonical ingredient names. Clients either
// submit labels they detected themselves as JSON, or upload an image as
// multipart form data for the configured classifier to label.
func (h *IngredientHandler) Detect(c *gin.Context) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.detectFromImage(c)
		return
	}

	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"ingredients": service.MapDetections(req.Labels),
	})
}

func (h *IngredientHandler) detectFromImage(c *gin.Context) {
	if h.classifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "no classifier is configured; submit detected labels instead"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respondBadRequest(c, fmt.Errorf("image file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxDetectImageBytes {
		respondBadRequest(c, fmt.Errorf("image exceeds the %dMB limit", maxDetectImageBytes>>20))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxDetectImageBytes))
	if err != nil {
		respondError(c, err)
		return
	}

	detections, err := h.classifier.Classify(c.Request.Context(), data, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"ingredients": service.MapDetections(detections),
		"detections":  detections,
	})
}

// Substitutions returns swap alternatives for a comma-separated ingredient
// list. Ingredients with no known substitution are omitted.
func (h *IngredientHandler) Substitutions(c *gin.Context) {
	raw := c.Query("ingredient")
	if raw == "" {
		respondBadRequest(c, fmt.Errorf("ingredient query parameter is required"))
		return
	}

	subs := make([]dictionary.Substitution, 0)
	for _, ingredient := range strings.Split(raw, ",") {
		ingredient = strings.TrimSpace(ingredient)
		if ingredient == "" {
			continue
		}
		if sub, ok := dictionary.Substitutions(ingredient); ok {
			subs = append(subs, sub)
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "substitutions": subs})
}
