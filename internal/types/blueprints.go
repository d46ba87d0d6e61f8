package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/forkwhisk/cookbook/internal/models"
)

// validate is the shared validator instance for blueprint structs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// IngredientBlueprint describes the desired values of an ingredient create
// or update. TempImageSrc, when set, is a readable path produced by the
// host application's picker that the asset store copies from.
type IngredientBlueprint struct {
	Name           string                 `json:"name" validate:"required"`
	PluralName     *string                `json:"plural_name,omitempty"`
	TempImageSrc   *string                `json:"temp_image_src,omitempty"`
	Unit           models.Unit            `json:"unit"`
	CalorificValue *models.CalorificValue `json:"calorific_value,omitempty"`
}

// Validate trims the text fields and checks the blueprint before any I/O.
func (b *IngredientBlueprint) Validate() error {
	b.Name = strings.TrimSpace(b.Name)
	if b.PluralName != nil {
		trimmed := strings.TrimSpace(*b.PluralName)
		b.PluralName = &trimmed
	}
	if err := validate.Struct(b); err != nil {
		return models.NewValidationError("name", "must not be blank")
	}
	if !b.Unit.Valid() {
		return models.NewValidationError("unit", fmt.Sprintf("unknown unit %d", b.Unit))
	}
	if cv := b.CalorificValue; cv != nil {
		if cv.ReferenceAmount <= 0 {
			return models.NewValidationError("calorific_value", "reference amount must be positive")
		}
		if cv.Kcal < 0 {
			return models.NewValidationError("calorific_value", "kcal must not be negative")
		}
	}
	return nil
}

// QuantizedIngredientRef references an ingredient by id with the amount
// the user entered. Amounts must be positive in user-facing forms.
type QuantizedIngredientRef struct {
	IngredientID uint    `json:"ingredient_id" validate:"required"`
	Amount       float64 `json:"amount" validate:"gt=0"`
}

// RecipeBlueprint describes the desired values of a recipe create or
// update. Ingredient amounts are the values entered for PortionCount
// portions; the repository normalizes them to the canonical one-portion
// basis before writing.
type RecipeBlueprint struct {
	Title           string                   `json:"title" validate:"required"`
	TempImageSrc    *string                  `json:"temp_image_src,omitempty"`
	Description     *string                  `json:"description,omitempty"`
	Difficulty      *models.Difficulty       `json:"difficulty,omitempty"`
	PreparationTime *Duration                `json:"preparation_time,omitempty"`
	IsFavorite      bool                     `json:"is_favorite"`
	Tags            []string                 `json:"tags"`
	Ingredients     []QuantizedIngredientRef `json:"ingredients" validate:"min=1,dive"`
	PortionCount    int                      `json:"portion_count" validate:"gt=0"`
}

// Validate trims the text fields and checks the blueprint before any I/O.
func (b *RecipeBlueprint) Validate() error {
	b.Title = strings.TrimSpace(b.Title)
	for i, tag := range b.Tags {
		b.Tags[i] = strings.TrimSpace(tag)
	}
	if b.Title == "" {
		return models.NewValidationError("title", "must not be blank")
	}
	if b.PortionCount <= 0 {
		return models.NewValidationError("portion_count", "must be a positive integer")
	}
	if len(b.Ingredients) == 0 {
		return models.NewValidationError("ingredients", "a recipe needs at least one ingredient")
	}
	if err := validate.Struct(b); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			if strings.Contains(fe.Namespace(), "Ingredients") {
				return models.NewValidationError("ingredients", "every ingredient needs a positive amount")
			}
		}
		return models.NewValidationError("recipe", err.Error())
	}
	if b.Difficulty != nil && !b.Difficulty.Valid() {
		return models.NewValidationError("difficulty", fmt.Sprintf("unknown difficulty %d", *b.Difficulty))
	}
	return nil
}

// CustomItemBlueprint describes a free-text shopping list entry.
type CustomItemBlueprint struct {
	Text string `json:"text" validate:"required"`
}

func (b *CustomItemBlueprint) Validate() error {
	b.Text = strings.TrimSpace(b.Text)
	if err := validate.Struct(b); err != nil {
		return models.NewValidationError("text", "must not be blank")
	}
	return nil
}

// IngredientItemBlueprint describes an ingredient-linked shopping list
// entry, used for both creation and the edit of an existing (possibly
// aggregated) row.
type IngredientItemBlueprint struct {
	IngredientID uint    `json:"ingredient_id" validate:"required"`
	Amount       float64 `json:"amount" validate:"gt=0"`
}

func (b *IngredientItemBlueprint) Validate() error {
	if err := validate.Struct(b); err != nil {
		if b.IngredientID == 0 {
			return models.NewValidationError("ingredient_id", "must reference an ingredient")
		}
		return models.NewValidationError("amount", "must be positive")
	}
	return nil
}
