package models

import (
	"time"
)

// Unit is the measurement unit an ingredient is quantified in.
type Unit int

const (
	UnitGram Unit = iota
	UnitLiter
	UnitPiece
)

// String returns the display abbreviation for the unit.
func (u Unit) String() string {
	switch u {
	case UnitGram:
		return "g"
	case UnitLiter:
		return "l"
	case UnitPiece:
		return "pcs"
	default:
		return "unknown"
	}
}

// Valid reports whether the unit is one of the known enum values.
func (u Unit) Valid() bool {
	return u >= UnitGram && u <= UnitPiece
}

// Difficulty is the optional difficulty rating of a recipe.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyDifficult
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyDifficult:
		return "difficult"
	default:
		return "unknown"
	}
}

func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyDifficult
}

// CalorificValue describes how many kcal a reference amount of an
// ingredient carries, e.g. 364 kcal per 100 g.
type CalorificValue struct {
	Kcal            float64 `json:"kcal"`
	ReferenceAmount float64 `json:"reference_amount"`
}

// Ingredient is a catalogued ingredient row.
type Ingredient struct {
	ID                   uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                 string   `gorm:"size:255;not null" json:"name"`
	PluralName           *string  `gorm:"size:255" json:"plural_name,omitempty"`
	ImageSrc             *string  `gorm:"size:1024" json:"image_src,omitempty"`
	Unit                 Unit     `gorm:"not null" json:"unit"`
	CalorificValueKcal   *float64 `json:"calorific_value_kcal,omitempty"`
	CalorificValueNUnits *float64 `json:"calorific_value_n_units,omitempty"`
}

// CalorificValue returns the kcal/reference pair, or nil unless both
// columns are present. The two columns are only meaningful together; a row
// with one of them null maps to no calorific value at all.
func (i *Ingredient) CalorificValue() *CalorificValue {
	if i.CalorificValueKcal == nil || i.CalorificValueNUnits == nil {
		return nil
	}
	return &CalorificValue{
		Kcal:            *i.CalorificValueKcal,
		ReferenceAmount: *i.CalorificValueNUnits,
	}
}

// SetCalorificValue writes the pair columns from the given value, clearing
// both when it is nil.
func (i *Ingredient) SetCalorificValue(cv *CalorificValue) {
	if cv == nil {
		i.CalorificValueKcal = nil
		i.CalorificValueNUnits = nil
		return
	}
	kcal := cv.Kcal
	ref := cv.ReferenceAmount
	i.CalorificValueKcal = &kcal
	i.CalorificValueNUnits = &ref
}

// Recipe is the recipe row without its join-table relations. The hydrated
// aggregate lives in the types package.
type Recipe struct {
	ID                       uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Title                    string      `gorm:"size:255;not null" json:"title"`
	ImageSrc                 *string     `gorm:"size:1024" json:"image_src,omitempty"`
	Description              *string     `gorm:"type:text" json:"description,omitempty"`
	Difficulty               *Difficulty `json:"difficulty,omitempty"`
	PreparationTimeInMinutes *int        `json:"preparation_time_in_minutes,omitempty"`
	IsFavorite               bool        `gorm:"not null;default:false" json:"is_favorite"`
}

// RecipeTag is a reusable free-text tag. Tag rows are shared between
// recipes and are never deleted when the last link to them goes away.
type RecipeTag struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Tagname string `gorm:"size:255" json:"tagname"`
}

// RecipeTagLink links a recipe to a tag.
type RecipeTagLink struct {
	RecipeID    uint `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	RecipeTagID uint `gorm:"primaryKey;autoIncrement:false" json:"recipe_tag_id"`
}

// RecipeIngredientLink links a recipe to an ingredient and carries the
// amount needed for exactly one portion as edge data.
type RecipeIngredientLink struct {
	RecipeID     uint    `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	IngredientID uint    `gorm:"primaryKey;autoIncrement:false" json:"ingredient_id"`
	Amount       float64 `gorm:"not null" json:"amount"`
}

// ShoppingListCustomItem is a free-text shopping list entry.
type ShoppingListCustomItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	IsChecked bool      `gorm:"not null;default:false" json:"is_checked"`
	CreatedAt time.Time `json:"created_at"`
}

// ShoppingListIngredientItem is a shopping list entry referencing a
// catalogued ingredient with a wanted amount.
type ShoppingListIngredientItem struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	IngredientID uint       `gorm:"not null;index" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
	Amount       float64    `gorm:"not null" json:"amount"`
	IsChecked    bool       `gorm:"not null;default:false" json:"is_checked"`
	CreatedAt    time.Time  `json:"created_at"`

	// IsAggregated marks a row that the read-side aggregation merged from
	// several underlying rows. It is recomputed on every read and never
	// written to the store.
	IsAggregated bool `gorm:"-" json:"is_aggregated"`
}
