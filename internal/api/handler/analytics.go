package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stats повертає кількість скарг за статусами
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.Analytics.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CategoryBreakdown повертає зведення "категорія → кількість"
func (h *Handler) CategoryBreakdown(c *gin.Context) {
	breakdown, err := h.Analytics.CategoryBreakdown()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute breakdown"})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
