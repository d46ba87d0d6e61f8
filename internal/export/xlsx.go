// Package export renders the shopping list as an XLSX workbook so it can
// be handed to someone without the app.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/forkwhisk/cookbook/internal/models"
	"github.com/forkwhisk/cookbook/internal/repository"
)

const sheetName = "Shopping List"

// ShoppingListWorkbook builds a workbook with one line per aggregated
// ingredient item plus every custom item. Checked rows are marked instead
// of omitted, mirroring the in-app view.
func ShoppingListWorkbook(customItems []models.ShoppingListCustomItem, ingredientItems []models.ShoppingListIngredientItem) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []interface{}{"Item", "Amount", "Unit", "Done"}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	rowIdx := 2
	for _, item := range repository.Aggregate(ingredientItems) {
		name := item.Ingredient.Name
		if item.Ingredient.PluralName != nil && item.Amount != 1 {
			name = *item.Ingredient.PluralName
		}
		row := []interface{}{name, item.Amount, item.Ingredient.Unit.String(), checkedMark(item.IsChecked)}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write ingredient row: %w", err)
		}
		rowIdx++
	}

	for _, item := range customItems {
		row := []interface{}{item.Text, "", "", checkedMark(item.IsChecked)}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write custom row: %w", err)
		}
		rowIdx++
	}

	return f, nil
}

func checkedMark(checked bool) string {
	if checked {
		return "x"
	}
	return ""
}
