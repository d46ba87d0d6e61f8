package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkwhisk/cookbook/config"
	"github.com/forkwhisk/cookbook/internal/api"
	"github.com/forkwhisk/cookbook/internal/assetstore"
	"github.com/forkwhisk/cookbook/internal/logger"
	"github.com/forkwhisk/cookbook/internal/repository"
	"github.com/forkwhisk/cookbook/internal/router"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New wires the repositories, handlers and routes into a server instance.
func New(cfg *config.Config, db *gorm.DB, assets *assetstore.Store) *Server {
	ingredients := repository.NewIngredientRepository(db, assets)
	recipes := repository.NewRecipeRepository(db, assets)
	shoppingList := repository.NewShoppingListRepository(db)

	engine := router.SetupRouter(
		db,
		cfg.AllowedOrigins,
		api.NewIngredientHandler(ingredients),
		api.NewRecipeHandler(recipes, ingredients),
		api.NewShoppingListHandler(shoppingList),
	)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:    cfg.Addr(),
			Handler: engine,
		},
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	logger.L().Infow("starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
