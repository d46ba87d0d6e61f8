package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkwhisk/cookbook/internal/models"
)

func TestShoppingListWorkbook(t *testing.T) {
	plural := "Tomatoes"
	tomato := models.Ingredient{ID: 1, Name: "Tomato", PluralName: &plural, Unit: models.UnitPiece}
	flour := models.Ingredient{ID: 2, Name: "Flour", Unit: models.UnitGram}

	base := time.Now()
	ingredientItems := []models.ShoppingListIngredientItem{
		{ID: 1, IngredientID: 1, Ingredient: tomato, Amount: 3, CreatedAt: base},
		{ID: 2, IngredientID: 2, Ingredient: flour, Amount: 500, CreatedAt: base.Add(time.Second)},
		{ID: 3, IngredientID: 2, Ingredient: flour, Amount: 250, CreatedAt: base.Add(2 * time.Second)},
	}
	customItems := []models.ShoppingListCustomItem{
		{ID: 1, Text: "Dish soap", IsChecked: true, CreatedAt: base},
	}

	f, err := ShoppingListWorkbook(customItems, ingredientItems)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Item", "Amount", "Unit", "Done"}, rows[0])

	// Plural name kicks in for amounts other than one.
	assert.Equal(t, "Tomatoes", rows[1][0])
	assert.Equal(t, "3", rows[1][1])
	assert.Equal(t, "pcs", rows[1][2])

	// The two flour rows are merged into one.
	assert.Equal(t, "Flour", rows[2][0])
	assert.Equal(t, "750", rows[2][1])
	assert.Equal(t, "g", rows[2][2])

	assert.Equal(t, "Dish soap", rows[3][0])
	assert.Equal(t, "x", rows[3][3])
}

func TestShoppingListWorkbookSingularName(t *testing.T) {
	plural := "Onions"
	onion := models.Ingredient{ID: 1, Name: "Onion", PluralName: &plural, Unit: models.UnitPiece}

	f, err := ShoppingListWorkbook(nil, []models.ShoppingListIngredientItem{
		{ID: 1, IngredientID: 1, Ingredient: onion, Amount: 1, CreatedAt: time.Now()},
	})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Onion", rows[1][0])
}

func TestShoppingListWorkbookEmpty(t *testing.T) {
	f, err := ShoppingListWorkbook(nil, nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
