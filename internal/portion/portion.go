// Package portion converts ingredient amounts between the "entered for N
// portions" form and the canonical one-portion basis the store uses.
package portion

import (
	"github.com/forkwhisk/cookbook/internal/types"
)

// NormalizeToOnePortion divides every amount by portionCount, converting
// amounts entered for portionCount portions into the canonical one-portion
// basis. portionCount must be a positive integer; that is a caller
// precondition, not checked here.
func NormalizeToOnePortion(ingredients []types.QuantizedIngredient, portionCount int) []types.QuantizedIngredient {
	out := make([]types.QuantizedIngredient, len(ingredients))
	for i, qi := range ingredients {
		qi.Amount /= float64(portionCount)
		out[i] = qi
	}
	return out
}

// ScaleForPortions multiplies every amount by portionCount. It is the
// inverse of NormalizeToOnePortion and is only used for display.
func ScaleForPortions(ingredients []types.QuantizedIngredient, portionCount int) []types.QuantizedIngredient {
	out := make([]types.QuantizedIngredient, len(ingredients))
	for i, qi := range ingredients {
		qi.Amount *= float64(portionCount)
		out[i] = qi
	}
	return out
}
