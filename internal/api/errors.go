package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkwhisk/cookbook/internal/models"
)

// respondError maps the core's typed errors onto status codes. Validation
// problems are the caller's fault, in-use conflicts are conflicts, and
// everything else means the store or the read is in a bad state.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var inUseErr *models.IngredientInUseError
	var integrityErr *models.DataIntegrityError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &inUseErr):
		c.JSON(http.StatusConflict, gin.H{"error": inUseErr.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &integrityErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": integrityErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
