package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkwhisk/cookbook/internal/models"
	"github.com/forkwhisk/cookbook/internal/types"
)

func TestCreateIngredient(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	plural := "Tomatoes"
	created, err := env.ingredients.Create(ctx, types.IngredientBlueprint{
		Name:           " Tomato ",
		PluralName:     &plural,
		Unit:           models.UnitPiece,
		CalorificValue: &models.CalorificValue{Kcal: 18, ReferenceAmount: 100},
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Tomato", created.Name)
	assert.Nil(t, created.ImageSrc)
	require.NotNil(t, created.CalorificValue())
	assert.Equal(t, 18.0, created.CalorificValue().Kcal)
	assert.Equal(t, 100.0, created.CalorificValue().ReferenceAmount)

	rows, err := env.ingredients.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0].ID)
	require.NotNil(t, rows[0].CalorificValue())
}

func TestCreateIngredientWithImage(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	src := writeTempImage(t, "picked.png", []byte("png-bytes"))
	created, err := env.ingredients.Create(ctx, types.IngredientBlueprint{
		Name:         "Tomato",
		Unit:         models.UnitPiece,
		TempImageSrc: &src,
	})
	require.NoError(t, err)

	require.NotNil(t, created.ImageSrc)
	assert.FileExists(t, *created.ImageSrc)

	rows, err := env.ingredients.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].ImageSrc)
	assert.Equal(t, *created.ImageSrc, *rows[0].ImageSrc)
}

func TestCreateIngredientFailsOnMissingImageSource(t *testing.T) {
	env := setupEnv(t)

	missing := "/nonexistent/picked.png"
	_, err := env.ingredients.Create(context.Background(), types.IngredientBlueprint{
		Name:         "Tomato",
		Unit:         models.UnitPiece,
		TempImageSrc: &missing,
	})
	assert.Error(t, err)
}

// A row with only one half of the calorific pair maps to no calorific
// value at all, never a partially populated one.
func TestPartialCalorificPairReadsAsAbsent(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	kcal := 100.0
	require.NoError(t, env.db.Create(&models.Ingredient{
		Name:               "Broken",
		Unit:               models.UnitGram,
		CalorificValueKcal: &kcal,
	}).Error)

	rows, err := env.ingredients.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].CalorificValue())
}

func TestUpdateIngredientWithoutImageChangeSkipsFileIO(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	src := writeTempImage(t, "picked.png", []byte("png-bytes"))
	created, err := env.ingredients.Create(ctx, types.IngredientBlueprint{
		Name:         "Tomato",
		Unit:         models.UnitPiece,
		TempImageSrc: &src,
	})
	require.NoError(t, err)

	// Passing the stored path back signals "image unchanged".
	updated, err := env.ingredients.Update(ctx, *created, types.IngredientBlueprint{
		Name:         "Cherry Tomato",
		Unit:         models.UnitPiece,
		TempImageSrc: created.ImageSrc,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Cherry Tomato", updated.Name)
	require.NotNil(t, updated.ImageSrc)
	assert.Equal(t, *created.ImageSrc, *updated.ImageSrc)
	assert.FileExists(t, *updated.ImageSrc)
}

func TestUpdateIngredientSwapsImage(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	first := writeTempImage(t, "first.png", []byte("first"))
	created, err := env.ingredients.Create(ctx, types.IngredientBlueprint{
		Name:         "Tomato",
		Unit:         models.UnitPiece,
		TempImageSrc: &first,
	})
	require.NoError(t, err)
	oldPath := *created.ImageSrc

	second := writeTempImage(t, "second.png", []byte("second"))
	updated, err := env.ingredients.Update(ctx, *created, types.IngredientBlueprint{
		Name:         "Tomato",
		Unit:         models.UnitPiece,
		TempImageSrc: &second,
	})
	require.NoError(t, err)

	assert.NoFileExists(t, oldPath)
	require.NotNil(t, updated.ImageSrc)
	assert.NotEqual(t, oldPath, *updated.ImageSrc)
	assert.FileExists(t, *updated.ImageSrc)
}

func TestUpdateIngredientClearsOptionalFields(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	plural := "Tomatoes"
	created, err := env.ingredients.Create(ctx, types.IngredientBlueprint{
		Name:           "Tomato",
		PluralName:     &plural,
		Unit:           models.UnitPiece,
		CalorificValue: &models.CalorificValue{Kcal: 18, ReferenceAmount: 100},
	})
	require.NoError(t, err)

	_, err = env.ingredients.Update(ctx, *created, types.IngredientBlueprint{
		Name: "Tomato",
		Unit: models.UnitPiece,
	})
	require.NoError(t, err)

	rows, err := env.ingredients.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].PluralName)
	assert.Nil(t, rows[0].CalorificValue())
}

func TestDeleteIngredientRemovesImageAndRow(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	src := writeTempImage(t, "picked.png", []byte("png-bytes"))
	created, err := env.ingredients.Create(ctx, types.IngredientBlueprint{
		Name:         "Tomato",
		Unit:         models.UnitPiece,
		TempImageSrc: &src,
	})
	require.NoError(t, err)
	imagePath := *created.ImageSrc

	require.NoError(t, env.ingredients.Delete(ctx, *created))

	assert.NoFileExists(t, imagePath)
	rows, err := env.ingredients.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDeleteIngredientWithoutImage(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	created := env.createIngredient(t, "Salt")
	require.NoError(t, env.ingredients.Delete(ctx, created))

	rows, err := env.ingredients.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDeleteReferencedIngredientIsBlocked(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	ing := env.createIngredient(t, "Flour")
	_, err := env.recipes.Create(ctx, types.RecipeBlueprint{
		Title:        "Bread",
		PortionCount: 1,
		Ingredients:  []types.QuantizedIngredientRef{{IngredientID: ing.ID, Amount: 500}},
	})
	require.NoError(t, err)

	_, err = env.shoppingList.CreateIngredientItem(ctx, types.IngredientItemBlueprint{
		IngredientID: ing.ID,
		Amount:       250,
	})
	require.NoError(t, err)

	err = env.ingredients.Delete(ctx, ing)
	var inUseErr *models.IngredientInUseError
	require.ErrorAs(t, err, &inUseErr)
	assert.Equal(t, int64(1), inUseErr.RecipeCount)
	assert.Equal(t, int64(1), inUseErr.ShoppingItemCount)

	// The row survives a blocked delete.
	rows, err := env.ingredients.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
