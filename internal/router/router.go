package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartrecipe/backend/internal/api"
	"github.com/smartrecipe/backend/internal/middleware"
)

// Handlers bundles the API handlers the router mounts.
type Handlers struct {
	Auth       *api.AuthHandler
	Recipe     *api.RecipeHandler
	Ingredient *api.IngredientHandler
	Health     *api.HealthHandler
}

// Setup configures the application routes and middleware chain.
func Setup(handlers Handlers, development bool) *gin.Engine {
	if !development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	group := router.Group("/api")
	handlers.Health.RegisterRoutes(group)
	handlers.Auth.RegisterRoutes(group)
	handlers.Recipe.RegisterRoutes(group)
	handlers.Ingredient.RegisterRoutes(group)

	return router
}
