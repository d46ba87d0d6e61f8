package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/forkwhisk/cookbook/internal/assetstore"
	"github.com/forkwhisk/cookbook/internal/models"
	"github.com/forkwhisk/cookbook/internal/types"
)

// IngredientRepository handles ingredient rows and their image lifecycle.
type IngredientRepository struct {
	db     *gorm.DB
	assets *assetstore.Store
}

// NewIngredientRepository creates a new IngredientRepository instance.
func NewIngredientRepository(db *gorm.DB, assets *assetstore.Store) *IngredientRepository {
	return &IngredientRepository{db: db, assets: assets}
}

// Create inserts a new ingredient. The row is written first without an
// image; if the blueprint carries a temporary image source it is then
// copied into the asset store and the row is pointed at the stored file.
// A failed copy is propagated so the row never references a missing file.
func (r *IngredientRepository) Create(ctx context.Context, bp types.IngredientBlueprint) (*models.Ingredient, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}

	row := models.Ingredient{
		Name:       bp.Name,
		PluralName: bp.PluralName,
		Unit:       bp.Unit,
	}
	row.SetCalorificValue(bp.CalorificValue)

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, models.NewStoreError("insert ingredient", err)
	}

	if bp.TempImageSrc != nil {
		stored, err := r.assets.StoreIngredientImage(row.ID, *bp.TempImageSrc)
		if err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Model(&models.Ingredient{}).
			Where("id = ?", row.ID).
			Update("image_src", stored).Error; err != nil {
			return nil, models.NewStoreError("update ingredient image", err)
		}
		row.ImageSrc = &stored
	}

	return &row, nil
}

// Get fetches a single ingredient by id.
func (r *IngredientRepository) Get(ctx context.Context, id uint) (*models.Ingredient, error) {
	var row models.Ingredient
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetAll returns every ingredient row.
func (r *IngredientRepository) GetAll(ctx context.Context) ([]models.Ingredient, error) {
	var rows []models.Ingredient
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, models.NewStoreError("select ingredients", err)
	}
	return rows, nil
}

// Update replaces every mutable field of the ingredient with the blueprint
// values. If the image reference changed the old file is removed
// (best effort) and the new temporary source copied in before the row is
// written; if it is unchanged no file I/O happens at all.
func (r *IngredientRepository) Update(ctx context.Context, original models.Ingredient, bp types.IngredientBlueprint) (*models.Ingredient, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}

	imageSrc := original.ImageSrc
	if !equalStrPtr(bp.TempImageSrc, original.ImageSrc) {
		if original.ImageSrc != nil {
			r.assets.RemoveBestEffort(*original.ImageSrc)
		}
		imageSrc = nil
		if bp.TempImageSrc != nil {
			stored, err := r.assets.StoreIngredientImage(original.ID, *bp.TempImageSrc)
			if err != nil {
				return nil, err
			}
			imageSrc = &stored
		}
	}

	updated := models.Ingredient{
		ID:         original.ID,
		Name:       bp.Name,
		PluralName: bp.PluralName,
		ImageSrc:   imageSrc,
		Unit:       bp.Unit,
	}
	updated.SetCalorificValue(bp.CalorificValue)

	// Map form so cleared optional fields are written as NULL instead of
	// being skipped as zero values.
	err := r.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("id = ?", original.ID).
		Updates(map[string]interface{}{
			"name":                    updated.Name,
			"plural_name":             updated.PluralName,
			"image_src":               updated.ImageSrc,
			"unit":                    updated.Unit,
			"calorific_value_kcal":    updated.CalorificValueKcal,
			"calorific_value_n_units": updated.CalorificValueNUnits,
		}).Error
	if err != nil {
		return nil, models.NewStoreError("update ingredient", err)
	}

	return &updated, nil
}

// Delete removes the ingredient's image file (best effort) and its row.
// Deleting an ingredient that recipes or shopping list items still
// reference is blocked with an IngredientInUseError; orphaned references
// would fail the recipe read's integrity check later.
func (r *IngredientRepository) Delete(ctx context.Context, ingredient models.Ingredient) error {
	var recipeCount int64
	if err := r.db.WithContext(ctx).Model(&models.RecipeIngredientLink{}).
		Where("ingredient_id = ?", ingredient.ID).
		Count(&recipeCount).Error; err != nil {
		return models.NewStoreError("count recipe references", err)
	}
	var itemCount int64
	if err := r.db.WithContext(ctx).Model(&models.ShoppingListIngredientItem{}).
		Where("ingredient_id = ?", ingredient.ID).
		Count(&itemCount).Error; err != nil {
		return models.NewStoreError("count shopping list references", err)
	}
	if recipeCount > 0 || itemCount > 0 {
		return &models.IngredientInUseError{
			IngredientID:      ingredient.ID,
			RecipeCount:       recipeCount,
			ShoppingItemCount: itemCount,
		}
	}

	if ingredient.ImageSrc != nil {
		r.assets.RemoveBestEffort(*ingredient.ImageSrc)
	}

	if err := r.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", ingredient.ID).Error; err != nil {
		return models.NewStoreError("delete ingredient", err)
	}
	return nil
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
