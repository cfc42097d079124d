package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCategories повертає засіяний довідник категорій
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.Storage.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}
