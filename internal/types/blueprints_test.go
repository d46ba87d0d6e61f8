package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkwhisk/cookbook/internal/models"
)

func TestIngredientBlueprintTrimsFields(t *testing.T) {
	plural := "  Tomatoes  "
	bp := IngredientBlueprint{Name: "  Tomato ", PluralName: &plural, Unit: models.UnitPiece}
	require.NoError(t, bp.Validate())
	assert.Equal(t, "Tomato", bp.Name)
	assert.Equal(t, "Tomatoes", *bp.PluralName)
}

func TestIngredientBlueprintRejectsBlankName(t *testing.T) {
	bp := IngredientBlueprint{Name: "   ", Unit: models.UnitGram}
	err := bp.Validate()
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)
}

func TestIngredientBlueprintRejectsBadCalorificValue(t *testing.T) {
	bp := IngredientBlueprint{
		Name:           "Flour",
		Unit:           models.UnitGram,
		CalorificValue: &models.CalorificValue{Kcal: 364, ReferenceAmount: 0},
	}
	var validationErr *models.ValidationError
	require.ErrorAs(t, bp.Validate(), &validationErr)

	bp.CalorificValue = &models.CalorificValue{Kcal: -1, ReferenceAmount: 100}
	require.ErrorAs(t, bp.Validate(), &validationErr)

	bp.CalorificValue = &models.CalorificValue{Kcal: 0, ReferenceAmount: 100}
	assert.NoError(t, bp.Validate())
}

func TestRecipeBlueprintRequiresIngredients(t *testing.T) {
	bp := RecipeBlueprint{Title: "Burger", PortionCount: 2}
	var validationErr *models.ValidationError
	require.ErrorAs(t, bp.Validate(), &validationErr)
	assert.Equal(t, "ingredients", validationErr.Field)
}

func TestRecipeBlueprintRequiresPositiveAmounts(t *testing.T) {
	bp := RecipeBlueprint{
		Title:        "Burger",
		PortionCount: 2,
		Ingredients:  []QuantizedIngredientRef{{IngredientID: 1, Amount: 0}},
	}
	var validationErr *models.ValidationError
	require.ErrorAs(t, bp.Validate(), &validationErr)
}

func TestRecipeBlueprintRequiresPositivePortionCount(t *testing.T) {
	bp := RecipeBlueprint{
		Title:       "Burger",
		Ingredients: []QuantizedIngredientRef{{IngredientID: 1, Amount: 100}},
	}
	var validationErr *models.ValidationError
	require.ErrorAs(t, bp.Validate(), &validationErr)
	assert.Equal(t, "portion_count", validationErr.Field)
}

func TestCustomItemBlueprintRejectsBlankText(t *testing.T) {
	bp := CustomItemBlueprint{Text: " \t "}
	var validationErr *models.ValidationError
	require.ErrorAs(t, bp.Validate(), &validationErr)
}

func TestIngredientItemBlueprintValidation(t *testing.T) {
	bp := IngredientItemBlueprint{IngredientID: 0, Amount: 100}
	var validationErr *models.ValidationError
	require.ErrorAs(t, bp.Validate(), &validationErr)

	bp = IngredientItemBlueprint{IngredientID: 1, Amount: -5}
	require.ErrorAs(t, bp.Validate(), &validationErr)

	bp = IngredientItemBlueprint{IngredientID: 1, Amount: 100}
	assert.NoError(t, bp.Validate())
}
