// Package nutrition derives calorie totals from quantized ingredients and
// their calorific ratios.
package nutrition

import (
	"github.com/forkwhisk/cookbook/internal/types"
)

// TotalKcalPerPortion sums (kcal / referenceAmount) * amount across the
// recipe's one-portion ingredients. If any ingredient lacks a calorific
// value the total is unknown and ok is false; missing data poisons the
// aggregate, there is no treat-missing-as-zero fallback.
func TotalKcalPerPortion(recipe types.Recipe) (total float64, ok bool) {
	for _, qi := range recipe.IngredientsForOnePortion {
		cv := qi.Ingredient.CalorificValue()
		if cv == nil {
			return 0, false
		}
		total += cv.Kcal / cv.ReferenceAmount * qi.Amount
	}
	return total, true
}
