package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forkwhisk/cookbook/internal/assetstore"
	"github.com/forkwhisk/cookbook/internal/models"
	"github.com/forkwhisk/cookbook/internal/repository"
	"github.com/forkwhisk/cookbook/internal/testdb"
	"github.com/forkwhisk/cookbook/internal/types"
)

type testEnv struct {
	db           *gorm.DB
	assets       *assetstore.Store
	ingredients  *repository.IngredientRepository
	recipes      *repository.RecipeRepository
	shoppingList *repository.ShoppingListRepository
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testdb.SetupTestDB(t)
	assets, err := assetstore.New(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	return &testEnv{
		db:           db,
		assets:       assets,
		ingredients:  repository.NewIngredientRepository(db, assets),
		recipes:      repository.NewRecipeRepository(db, assets),
		shoppingList: repository.NewShoppingListRepository(db),
	}
}

func (e *testEnv) createIngredient(t *testing.T, name string) models.Ingredient {
	t.Helper()
	created, err := e.ingredients.Create(context.Background(), types.IngredientBlueprint{
		Name: name,
		Unit: models.UnitGram,
	})
	require.NoError(t, err)
	return *created
}

func writeTempImage(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func strPtr(s string) *string {
	return &s
}
