package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkwhisk/cookbook/internal/api"
	"github.com/forkwhisk/cookbook/internal/database"
	"github.com/forkwhisk/cookbook/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	db *gorm.DB,
	allowedOrigins []string,
	ingredientHandler *api.IngredientHandler,
	recipeHandler *api.RecipeHandler,
	shoppingListHandler *api.ShoppingListHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	ingredientHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	shoppingListHandler.RegisterRoutes(v1)

	return router
}
