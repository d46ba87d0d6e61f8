package models

import "fmt"

// ValidationError reports invalid caller input. It is raised before any
// I/O happens, so no partial state change accompanies it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// DataIntegrityError reports a stored reference that cannot be resolved,
// e.g. a recipe ingredient link pointing at an ingredient id absent from
// the supplied ingredient set. The whole read that hits it must fail.
type DataIntegrityError struct {
	Entity string
	ID     uint
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity violation on %s %d: %s", e.Entity, e.ID, e.Reason)
}

// IngredientInUseError blocks deletion of an ingredient that is still
// referenced by recipes or shopping list items.
type IngredientInUseError struct {
	IngredientID      uint
	RecipeCount       int64
	ShoppingItemCount int64
}

func (e *IngredientInUseError) Error() string {
	return fmt.Sprintf("ingredient %d is referenced by %d recipe(s) and %d shopping list item(s)",
		e.IngredientID, e.RecipeCount, e.ShoppingItemCount)
}

// StoreError wraps a failed statement against the underlying store. It is
// always propagated; a failed statement means state may be inconsistent.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the failed operation name.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
