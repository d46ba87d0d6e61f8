package types

import (
	"github.com/forkwhisk/cookbook/internal/models"
)

// QuantizedIngredient is an (ingredient, amount) pair: how much of an
// ingredient is needed. Used as the per-portion recipe edge and as the
// shopping-list ingredient item payload.
type QuantizedIngredient struct {
	Ingredient models.Ingredient `json:"ingredient"`
	Amount     float64           `json:"amount"`
}

// Recipe is the hydrated recipe aggregate: the recipe row with its tags
// and its ingredient links resolved to embedded Ingredient values. Amounts
// in IngredientsForOnePortion always describe exactly one portion; scaling
// for more portions is a presentation transform and is never persisted.
type Recipe struct {
	ID                       uint                  `json:"id"`
	Title                    string                `json:"title"`
	ImageSrc                 *string               `json:"image_src,omitempty"`
	Description              *string               `json:"description,omitempty"`
	Difficulty               *models.Difficulty    `json:"difficulty,omitempty"`
	PreparationTime          *Duration             `json:"preparation_time,omitempty"`
	IsFavorite               bool                  `json:"is_favorite"`
	Tags                     []string              `json:"tags"`
	IngredientsForOnePortion []QuantizedIngredient `json:"ingredients_for_one_portion"`
}
