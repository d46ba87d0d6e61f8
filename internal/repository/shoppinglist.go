package repository

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/forkwhisk/cookbook/internal/models"
	"github.com/forkwhisk/cookbook/internal/types"
)

// ShoppingListRepository handles both shopping list item kinds and the
// aggregated-row edit protocol.
type ShoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new ShoppingListRepository instance.
func NewShoppingListRepository(db *gorm.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// CreateCustomItem inserts a free-text item, unchecked.
func (r *ShoppingListRepository) CreateCustomItem(ctx context.Context, bp types.CustomItemBlueprint) (*models.ShoppingListCustomItem, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	row := models.ShoppingListCustomItem{Text: bp.Text}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, models.NewStoreError("insert custom item", err)
	}
	return &row, nil
}

// CreateIngredientItem inserts an ingredient-linked item, unchecked, and
// returns it with the ingredient hydrated.
func (r *ShoppingListRepository) CreateIngredientItem(ctx context.Context, bp types.IngredientItemBlueprint) (*models.ShoppingListIngredientItem, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	row := models.ShoppingListIngredientItem{
		IngredientID: bp.IngredientID,
		Amount:       bp.Amount,
	}
	if err := r.db.WithContext(ctx).Omit("Ingredient").Create(&row).Error; err != nil {
		return nil, models.NewStoreError("insert ingredient item", err)
	}
	if err := r.db.WithContext(ctx).Preload("Ingredient").First(&row, "id = ?", row.ID).Error; err != nil {
		return nil, models.NewStoreError("reload ingredient item", err)
	}
	return &row, nil
}

// GetAllCustomItems returns every free-text item, oldest first.
func (r *ShoppingListRepository) GetAllCustomItems(ctx context.Context) ([]models.ShoppingListCustomItem, error) {
	var rows []models.ShoppingListCustomItem
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, models.NewStoreError("select custom items", err)
	}
	return rows, nil
}

// GetAllIngredientItems returns every ingredient-linked item with its
// ingredient hydrated, oldest first. The rows are the raw, unaggregated
// store content; callers wanting the user-facing view run Aggregate over
// the result.
func (r *ShoppingListRepository) GetAllIngredientItems(ctx context.Context) ([]models.ShoppingListIngredientItem, error) {
	var rows []models.ShoppingListIngredientItem
	if err := r.db.WithContext(ctx).Preload("Ingredient").Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, models.NewStoreError("select ingredient items", err)
	}
	return rows, nil
}

// Aggregate is the read-side projection that merges multiple unchecked
// rows sharing an ingredient into one summed row. Checked rows are never
// merged so users can see exactly what they checked off. The merged row
// carries the id and timestamp of its oldest constituent and has
// IsAggregated set; a group of one stays a plain row. Nothing here touches
// the store — the flag is recomputed on every read and never persisted.
func Aggregate(items []models.ShoppingListIngredientItem) []models.ShoppingListIngredientItem {
	out := make([]models.ShoppingListIngredientItem, 0, len(items))
	merged := make(map[uint]int) // ingredient id -> index in out

	for _, item := range items {
		item.IsAggregated = false
		if item.IsChecked {
			out = append(out, item)
			continue
		}
		if idx, ok := merged[item.IngredientID]; ok {
			out[idx].Amount += item.Amount
			out[idx].IsAggregated = true
			continue
		}
		merged[item.IngredientID] = len(out)
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// UpdateIngredientItem edits an item. Editing an aggregated row collapses
// its constituents: every unchecked row sharing the aggregated row's
// ingredient is deleted and exactly one new row with the entered values is
// inserted, atomically. Editing a plain row replaces ingredient and amount
// in place.
func (r *ShoppingListRepository) UpdateIngredientItem(ctx context.Context, item models.ShoppingListIngredientItem, bp types.IngredientItemBlueprint) (*models.ShoppingListIngredientItem, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}

	var result models.ShoppingListIngredientItem
	if item.IsAggregated {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			err := tx.Delete(&models.ShoppingListIngredientItem{},
				"ingredient_id = ? AND is_checked = ?", item.IngredientID, false).Error
			if err != nil {
				return err
			}
			result = models.ShoppingListIngredientItem{
				IngredientID: bp.IngredientID,
				Amount:       bp.Amount,
			}
			return tx.Omit("Ingredient").Create(&result).Error
		})
		if err != nil {
			return nil, models.NewStoreError("merge aggregated item", err)
		}
	} else {
		err := r.db.WithContext(ctx).Model(&models.ShoppingListIngredientItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"ingredient_id": bp.IngredientID,
				"amount":        bp.Amount,
			}).Error
		if err != nil {
			return nil, models.NewStoreError("update ingredient item", err)
		}
		result.ID = item.ID
	}

	if err := r.db.WithContext(ctx).Preload("Ingredient").First(&result, "id = ?", result.ID).Error; err != nil {
		return nil, models.NewStoreError("reload ingredient item", err)
	}
	return &result, nil
}

// SetCustomItemChecked flips the checked flag of a free-text item.
func (r *ShoppingListRepository) SetCustomItemChecked(ctx context.Context, id uint, checked bool) error {
	res := r.db.WithContext(ctx).Model(&models.ShoppingListCustomItem{}).
		Where("id = ?", id).
		Update("is_checked", checked)
	if res.Error != nil {
		return models.NewStoreError("update custom item", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetIngredientItemChecked flips the checked flag of a single underlying
// row. Checking an aggregated view row is a UI decision about which
// constituents to check; the repository only addresses real rows.
func (r *ShoppingListRepository) SetIngredientItemChecked(ctx context.Context, id uint, checked bool) error {
	res := r.db.WithContext(ctx).Model(&models.ShoppingListIngredientItem{}).
		Where("id = ?", id).
		Update("is_checked", checked)
	if res.Error != nil {
		return models.NewStoreError("update ingredient item", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCustomItem removes a free-text item.
func (r *ShoppingListRepository) DeleteCustomItem(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ShoppingListCustomItem{}, "id = ?", id).Error; err != nil {
		return models.NewStoreError("delete custom item", err)
	}
	return nil
}

// DeleteIngredientItem removes an ingredient-linked item.
func (r *ShoppingListRepository) DeleteIngredientItem(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ShoppingListIngredientItem{}, "id = ?", id).Error; err != nil {
		return models.NewStoreError("delete ingredient item", err)
	}
	return nil
}

// DeleteCheckedItems removes every checked row from both item tables. The
// two deletions are independent and order-insensitive.
func (r *ShoppingListRepository) DeleteCheckedItems(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Delete(&models.ShoppingListCustomItem{}, "is_checked = ?", true).Error; err != nil {
		return models.NewStoreError("delete checked custom items", err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.ShoppingListIngredientItem{}, "is_checked = ?", true).Error; err != nil {
		return models.NewStoreError("delete checked ingredient items", err)
	}
	return nil
}
