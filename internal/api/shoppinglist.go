package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkwhisk/cookbook/internal/export"
	"github.com/forkwhisk/cookbook/internal/models"
	"github.com/forkwhisk/cookbook/internal/repository"
	"github.com/forkwhisk/cookbook/internal/types"
)

type ShoppingListHandler struct {
	items *repository.ShoppingListRepository
}

func NewShoppingListHandler(items *repository.ShoppingListRepository) *ShoppingListHandler {
	return &ShoppingListHandler{items: items}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	list := router.Group("/shopping-list")
	{
		list.GET("", h.GetShoppingList)
		list.GET("/export", h.ExportShoppingList)
		list.DELETE("/checked-items", h.DeleteCheckedItems)

		list.POST("/custom-items", h.CreateCustomItem)
		list.PUT("/custom-items/:id/checked", h.SetCustomItemChecked)
		list.DELETE("/custom-items/:id", h.DeleteCustomItem)

		list.POST("/ingredient-items", h.CreateIngredientItem)
		list.PUT("/ingredient-items/:id", h.UpdateIngredientItem)
		list.PUT("/ingredient-items/:id/checked", h.SetIngredientItemChecked)
		list.DELETE("/ingredient-items/:id", h.DeleteIngredientItem)
	}
}

// GetShoppingList returns the user-facing list: custom items as stored,
// ingredient items run through the aggregation read-model.
func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	custom, err := h.items.GetAllCustomItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ingredientItems, err := h.items.GetAllIngredientItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"custom_items":     custom,
		"ingredient_items": repository.Aggregate(ingredientItems),
	})
}

func (h *ShoppingListHandler) ExportShoppingList(c *gin.Context) {
	custom, err := h.items.GetAllCustomItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ingredientItems, err := h.items.GetAllIngredientItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	workbook, err := export.ShoppingListWorkbook(custom, ingredientItems)
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() { _ = workbook.Close() }()

	c.Header("Content-Disposition", `attachment; filename="shopping-list.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}

func (h *ShoppingListHandler) CreateCustomItem(c *gin.Context) {
	var bp types.CustomItemBlueprint
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := h.items.CreateCustomItem(c.Request.Context(), bp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": created})
}

func (h *ShoppingListHandler) CreateIngredientItem(c *gin.Context) {
	var bp types.IngredientItemBlueprint
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := h.items.CreateIngredientItem(c.Request.Context(), bp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": created})
}

// UpdateIngredientItem edits a row from the aggregated view. Whether the
// target is an aggregated row is decided here against a fresh read, so the
// merge protocol can never act on a stale client-side flag.
func (h *ShoppingListHandler) UpdateIngredientItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var bp types.IngredientItemBlueprint
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rows, err := h.items.GetAllIngredientItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var target *models.ShoppingListIngredientItem
	for _, item := range repository.Aggregate(rows) {
		if item.ID == id {
			item := item
			target = &item
			break
		}
	}
	if target == nil {
		respondError(c, gorm.ErrRecordNotFound)
		return
	}

	updated, err := h.items.UpdateIngredientItem(c.Request.Context(), *target, bp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": updated})
}

func (h *ShoppingListHandler) SetCustomItemChecked(c *gin.Context) {
	h.setChecked(c, h.items.SetCustomItemChecked)
}

func (h *ShoppingListHandler) SetIngredientItemChecked(c *gin.Context) {
	h.setChecked(c, h.items.SetIngredientItemChecked)
}

func (h *ShoppingListHandler) setChecked(c *gin.Context, set func(ctx context.Context, id uint, checked bool) error) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var body struct {
		IsChecked bool `json:"is_checked"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := set(c.Request.Context(), id, body.IsChecked); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingListHandler) DeleteCustomItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	if err := h.items.DeleteCustomItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingListHandler) DeleteIngredientItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	if err := h.items.DeleteIngredientItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingListHandler) DeleteCheckedItems(c *gin.Context) {
	if err := h.items.DeleteCheckedItems(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
