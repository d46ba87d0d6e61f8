package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/forkwhisk/cookbook/internal/assetstore"
	"github.com/forkwhisk/cookbook/internal/models"
	"github.com/forkwhisk/cookbook/internal/portion"
	"github.com/forkwhisk/cookbook/internal/types"
)

// RecipeRepository handles recipe rows, both join tables and the recipe
// image lifecycle.
type RecipeRepository struct {
	db     *gorm.DB
	assets *assetstore.Store
}

// NewRecipeRepository creates a new RecipeRepository instance.
func NewRecipeRepository(db *gorm.DB, assets *assetstore.Store) *RecipeRepository {
	return &RecipeRepository{db: db, assets: assets}
}

// recipeAggregateQuery reconstitutes every recipe with its tag set and
// ingredient links in a single round trip. Both join sets are folded into
// JSON array side channels so the result stays one row per recipe instead
// of one row per join edge.
const recipeAggregateQuery = `
SELECT r.id,
       r.image_src,
       r.title,
       r.description,
       r.difficulty,
       r.preparation_time_in_minutes,
       r.is_favorite,
       json_group_array(DISTINCT t.tagname) AS tags_json,
       json_group_array(DISTINCT json_object('ingredientId', il.ingredient_id, 'amount', il.amount)) AS ingredients_json
FROM recipes r
LEFT JOIN recipe_tag_links tl ON tl.recipe_id = r.id
LEFT JOIN recipe_tags t ON t.id = tl.recipe_tag_id
LEFT JOIN recipe_ingredient_links il ON il.recipe_id = r.id
GROUP BY r.id
ORDER BY r.id`

type recipeRow struct {
	ID                       *uint              `gorm:"column:id"`
	ImageSrc                 *string            `gorm:"column:image_src"`
	Title                    string             `gorm:"column:title"`
	Description              *string            `gorm:"column:description"`
	Difficulty               *models.Difficulty `gorm:"column:difficulty"`
	PreparationTimeInMinutes *int               `gorm:"column:preparation_time_in_minutes"`
	IsFavorite               bool               `gorm:"column:is_favorite"`
	TagsJSON                 string             `gorm:"column:tags_json"`
	IngredientsJSON          string             `gorm:"column:ingredients_json"`
}

// GetAll returns every recipe fully hydrated, resolving ingredient ids
// against the caller-supplied ingredient list. The caller must supply a
// complete, current list: any link whose ingredient is missing from it
// fails the whole read with a DataIntegrityError.
func (r *RecipeRepository) GetAll(ctx context.Context, allIngredients []models.Ingredient) ([]types.Recipe, error) {
	var rows []recipeRow
	if err := r.db.WithContext(ctx).Raw(recipeAggregateQuery).Scan(&rows).Error; err != nil {
		return nil, models.NewStoreError("select recipes", err)
	}

	byID := make(map[uint]models.Ingredient, len(allIngredients))
	for _, ing := range allIngredients {
		byID[ing.ID] = ing
	}

	recipes := make([]types.Recipe, 0, len(rows))
	for _, row := range rows {
		// The aggregate join can produce a single placeholder row with a
		// null primary key on an empty dataset; it is not a recipe.
		if row.ID == nil {
			continue
		}
		recipe, err := r.hydrateRow(row, byID)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

func (r *RecipeRepository) hydrateRow(row recipeRow, ingredients map[uint]models.Ingredient) (*types.Recipe, error) {
	tags, err := decodeTags(row.TagsJSON)
	if err != nil {
		return nil, &models.DataIntegrityError{Entity: "recipe", ID: *row.ID, Reason: fmt.Sprintf("malformed tag data: %v", err)}
	}

	links, err := decodeIngredientLinks(row.IngredientsJSON)
	if err != nil {
		return nil, &models.DataIntegrityError{Entity: "recipe", ID: *row.ID, Reason: fmt.Sprintf("malformed ingredient data: %v", err)}
	}

	quantized := make([]types.QuantizedIngredient, 0, len(links))
	for _, link := range links {
		ing, ok := ingredients[link.IngredientID]
		if !ok {
			return nil, &models.DataIntegrityError{
				Entity: "recipe",
				ID:     *row.ID,
				Reason: fmt.Sprintf("referenced ingredient %d missing", link.IngredientID),
			}
		}
		quantized = append(quantized, types.QuantizedIngredient{Ingredient: ing, Amount: link.Amount})
	}

	var prep *types.Duration
	if row.PreparationTimeInMinutes != nil {
		d := types.OfMinutes(*row.PreparationTimeInMinutes)
		prep = &d
	}

	return &types.Recipe{
		ID:                       *row.ID,
		Title:                    row.Title,
		ImageSrc:                 row.ImageSrc,
		Description:              row.Description,
		Difficulty:               row.Difficulty,
		PreparationTime:          prep,
		IsFavorite:               row.IsFavorite,
		Tags:                     tags,
		IngredientsForOnePortion: quantized,
	}, nil
}

// decodeTags unpacks the tag side channel, dropping the null entry the
// left join emits for recipes without tags.
func decodeTags(raw string) ([]string, error) {
	var elems []*string
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(elems))
	for _, e := range elems {
		if e != nil {
			tags = append(tags, *e)
		}
	}
	return tags, nil
}

type ingredientLink struct {
	IngredientID uint
	Amount       float64
}

type rawIngredientLink struct {
	IngredientID *uint    `json:"ingredientId"`
	Amount       *float64 `json:"amount"`
}

// decodeIngredientLinks unpacks the ingredient side channel. Depending on
// sqlite's JSON subtype handling the array elements arrive either as
// objects or as strings containing objects; both forms are accepted. Null
// ids (the left-join placeholder for link-less recipes) are dropped.
func decodeIngredientLinks(raw string) ([]ingredientLink, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, err
	}

	links := make([]ingredientLink, 0, len(elems))
	for _, elem := range elems {
		payload := []byte(strings.TrimSpace(string(elem)))
		if string(payload) == "null" {
			continue
		}
		if payload[0] == '"' {
			var unquoted string
			if err := json.Unmarshal(payload, &unquoted); err != nil {
				return nil, err
			}
			payload = []byte(unquoted)
		}
		var link rawIngredientLink
		if err := json.Unmarshal(payload, &link); err != nil {
			return nil, err
		}
		if link.IngredientID == nil {
			continue
		}
		amount := 0.0
		if link.Amount != nil {
			amount = *link.Amount
		}
		links = append(links, ingredientLink{IngredientID: *link.IngredientID, Amount: amount})
	}
	return links, nil
}

// EnsureUniqueTitle rejects a title when another recipe already carries
// the exact trimmed title. excludeID skips the recipe being updated so a
// recipe may always keep its own title. Callers run this before Create
// and Update.
func (r *RecipeRepository) EnsureUniqueTitle(ctx context.Context, title string, excludeID *uint) error {
	trimmed := strings.TrimSpace(title)
	q := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("title = ?", trimmed)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return models.NewStoreError("count recipe titles", err)
	}
	if count > 0 {
		return models.NewValidationError("title", fmt.Sprintf("a recipe titled %q already exists", trimmed))
	}
	return nil
}

// Create inserts the recipe row, links every tag (reusing or creating tag
// rows) and inserts one ingredient link per ingredient with its amount
// normalized to one portion. The rows are written in one transaction; the
// image, if any, is copied afterwards and the row pointed at it.
func (r *RecipeRepository) Create(ctx context.Context, bp types.RecipeBlueprint) (*types.Recipe, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}

	entered, err := r.resolveIngredients(ctx, bp.Ingredients)
	if err != nil {
		return nil, err
	}
	normalized := portion.NormalizeToOnePortion(entered, bp.PortionCount)

	row := models.Recipe{
		Title:                    bp.Title,
		Description:              bp.Description,
		Difficulty:               bp.Difficulty,
		PreparationTimeInMinutes: minutesPtr(bp.PreparationTime),
		IsFavorite:               bp.IsFavorite,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if err := replaceTagLinks(tx, row.ID, bp.Tags); err != nil {
			return err
		}
		return replaceIngredientLinks(tx, row.ID, normalized)
	})
	if err != nil {
		return nil, models.NewStoreError("create recipe", err)
	}

	if bp.TempImageSrc != nil {
		stored, err := r.assets.StoreRecipeImage(row.ID, *bp.TempImageSrc)
		if err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Model(&models.Recipe{}).
			Where("id = ?", row.ID).
			Update("image_src", stored).Error; err != nil {
			return nil, models.NewStoreError("update recipe image", err)
		}
		row.ImageSrc = &stored
	}

	return r.hydrate(row, bp.Tags, normalized), nil
}

// Update writes every recipe field unconditionally and replaces both join
// tables wholesale: all existing links are deleted and the new sets
// inserted. Unlinked tag rows are kept; tags are never garbage-collected.
func (r *RecipeRepository) Update(ctx context.Context, original types.Recipe, bp types.RecipeBlueprint) (*types.Recipe, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}

	entered, err := r.resolveIngredients(ctx, bp.Ingredients)
	if err != nil {
		return nil, err
	}
	normalized := portion.NormalizeToOnePortion(entered, bp.PortionCount)

	// Image swap ordering per the crash-consistency contract: remove the
	// old file, copy the new one, only then write the row.
	imageSrc := original.ImageSrc
	if !equalStrPtr(bp.TempImageSrc, original.ImageSrc) {
		if original.ImageSrc != nil {
			r.assets.RemoveBestEffort(*original.ImageSrc)
		}
		imageSrc = nil
		if bp.TempImageSrc != nil {
			stored, err := r.assets.StoreRecipeImage(original.ID, *bp.TempImageSrc)
			if err != nil {
				return nil, err
			}
			imageSrc = &stored
		}
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Recipe{}).
			Where("id = ?", original.ID).
			Updates(map[string]interface{}{
				"title":                       bp.Title,
				"image_src":                   imageSrc,
				"description":                 bp.Description,
				"difficulty":                  bp.Difficulty,
				"preparation_time_in_minutes": minutesPtr(bp.PreparationTime),
				"is_favorite":                 bp.IsFavorite,
			}).Error
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeTagLink{}, "recipe_id = ?", original.ID).Error; err != nil {
			return err
		}
		if err := replaceTagLinks(tx, original.ID, bp.Tags); err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeIngredientLink{}, "recipe_id = ?", original.ID).Error; err != nil {
			return err
		}
		return replaceIngredientLinks(tx, original.ID, normalized)
	})
	if err != nil {
		return nil, models.NewStoreError("update recipe", err)
	}

	row := models.Recipe{
		ID:                       original.ID,
		Title:                    bp.Title,
		ImageSrc:                 imageSrc,
		Description:              bp.Description,
		Difficulty:               bp.Difficulty,
		PreparationTimeInMinutes: minutesPtr(bp.PreparationTime),
		IsFavorite:               bp.IsFavorite,
	}
	return r.hydrate(row, bp.Tags, normalized), nil
}

// SetFavorite flips the favorite flag in place.
func (r *RecipeRepository) SetFavorite(ctx context.Context, id uint, favorite bool) error {
	res := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", id).
		Update("is_favorite", favorite)
	if res.Error != nil {
		return models.NewStoreError("update favorite flag", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the recipe image (best effort), then both join tables'
// rows, then the recipe row. Children go before the parent so the ordering
// holds without relying on cascade support.
func (r *RecipeRepository) Delete(ctx context.Context, recipe types.Recipe) error {
	if recipe.ImageSrc != nil {
		r.assets.RemoveBestEffort(*recipe.ImageSrc)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RecipeTagLink{}, "recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeIngredientLink{}, "recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error
	})
	if err != nil {
		return models.NewStoreError("delete recipe", err)
	}
	return nil
}

// resolveIngredients hydrates blueprint refs against the ingredient table,
// keeping the entered amounts.
func (r *RecipeRepository) resolveIngredients(ctx context.Context, refs []types.QuantizedIngredientRef) ([]types.QuantizedIngredient, error) {
	ids := make([]uint, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.IngredientID)
	}

	var rows []models.Ingredient
	if err := r.db.WithContext(ctx).Find(&rows, "id IN ?", ids).Error; err != nil {
		return nil, models.NewStoreError("select ingredients", err)
	}
	byID := make(map[uint]models.Ingredient, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	out := make([]types.QuantizedIngredient, 0, len(refs))
	for _, ref := range refs {
		ing, ok := byID[ref.IngredientID]
		if !ok {
			return nil, models.NewValidationError("ingredients",
				"unknown ingredient id "+strconv.FormatUint(uint64(ref.IngredientID), 10))
		}
		out = append(out, types.QuantizedIngredient{Ingredient: ing, Amount: ref.Amount})
	}
	return out, nil
}

// replaceTagLinks resolves or creates a tag row per tag name and links it
// to the recipe, preserving the order the tags were written in.
func replaceTagLinks(tx *gorm.DB, recipeID uint, tags []string) error {
	for _, name := range tags {
		var tag models.RecipeTag
		err := tx.Where("tagname = ?", name).First(&tag).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			tag = models.RecipeTag{Tagname: name}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}
		link := models.RecipeTagLink{RecipeID: recipeID, RecipeTagID: tag.ID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceIngredientLinks(tx *gorm.DB, recipeID uint, quantized []types.QuantizedIngredient) error {
	for _, qi := range quantized {
		link := models.RecipeIngredientLink{
			RecipeID:     recipeID,
			IngredientID: qi.Ingredient.ID,
			Amount:       qi.Amount,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *RecipeRepository) hydrate(row models.Recipe, tags []string, quantized []types.QuantizedIngredient) *types.Recipe {
	var prep *types.Duration
	if row.PreparationTimeInMinutes != nil {
		d := types.OfMinutes(*row.PreparationTimeInMinutes)
		prep = &d
	}
	return &types.Recipe{
		ID:                       row.ID,
		Title:                    row.Title,
		ImageSrc:                 row.ImageSrc,
		Description:              row.Description,
		Difficulty:               row.Difficulty,
		PreparationTime:          prep,
		IsFavorite:               row.IsFavorite,
		Tags:                     tags,
		IngredientsForOnePortion: quantized,
	}
}

func minutesPtr(d *types.Duration) *int {
	if d == nil {
		return nil
	}
	m := d.AsMinutes()
	return &m
}
