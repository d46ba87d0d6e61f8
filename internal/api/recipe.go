package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkwhisk/cookbook/internal/nutrition"
	"github.com/forkwhisk/cookbook/internal/portion"
	"github.com/forkwhisk/cookbook/internal/repository"
	"github.com/forkwhisk/cookbook/internal/types"
)

type RecipeHandler struct {
	recipes     *repository.RecipeRepository
	ingredients *repository.IngredientRepository
}

func NewRecipeHandler(recipes *repository.RecipeRepository, ingredients *repository.IngredientRepository) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, ingredients: ingredients}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/favorite", h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", h.UnfavoriteRecipe)
	}
}

// recipeView is a hydrated recipe plus its derived per-portion calories.
type recipeView struct {
	types.Recipe
	TotalKcalPerPortion *float64 `json:"total_kcal_per_portion,omitempty"`
}

func toView(r types.Recipe) recipeView {
	view := recipeView{Recipe: r}
	if kcal, ok := nutrition.TotalKcalPerPortion(r); ok {
		view.TotalKcalPerPortion = &kcal
	}
	return view
}

// ListRecipes returns every recipe. With ?portions=N the ingredient
// amounts are scaled for N portions for display; the stored amounts stay
// on the one-portion basis.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.loadAll(c)
	if err != nil {
		respondError(c, err)
		return
	}

	portions := 1
	if raw := c.Query("portions"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid portions value"})
			return
		}
		portions = p
	}

	views := make([]recipeView, 0, len(recipes))
	for _, r := range recipes {
		view := toView(r)
		if portions > 1 {
			view.IngredientsForOnePortion = portion.ScaleForPortions(r.IngredientsForOnePortion, portions)
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"recipes": views})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.findRecipe(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": toView(*recipe)})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var bp types.RecipeBlueprint
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Title uniqueness is checked up front so nothing is inserted for a
	// duplicate.
	if err := h.recipes.EnsureUniqueTitle(c.Request.Context(), bp.Title, nil); err != nil {
		respondError(c, err)
		return
	}

	created, err := h.recipes.Create(c.Request.Context(), bp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": toView(*created)})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	original, err := h.findRecipe(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var bp types.RecipeBlueprint
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.recipes.EnsureUniqueTitle(c.Request.Context(), bp.Title, &original.ID); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.recipes.Update(c.Request.Context(), *original, bp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": toView(*updated)})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipe, err := h.findRecipe(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), *recipe); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	h.setFavorite(c, true)
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *RecipeHandler) setFavorite(c *gin.Context, favorite bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return
	}
	if err := h.recipes.SetFavorite(c.Request.Context(), id, favorite); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) loadAll(c *gin.Context) ([]types.Recipe, error) {
	ingredients, err := h.ingredients.GetAll(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return h.recipes.GetAll(c.Request.Context(), ingredients)
}

func (h *RecipeHandler) findRecipe(c *gin.Context) (*types.Recipe, error) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	recipes, err := h.loadAll(c)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
