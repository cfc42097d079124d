package handler

import (
	"errors"
	"net/http"
	"strconv"

	"civicgo/backend/internal/complaint"
	"civicgo/backend/internal/config"

	"github.com/gin-gonic/gin"
)

// CreateComplaint приймає нову скаргу від автентифікованого громадянина
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req complaint.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user := CurrentUser(c)
	created, err := h.Complaints.Create(user.ID, user.Name, req)
	if err != nil {
		if errors.Is(err, complaint.ErrInvalidCoordinates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create complaint"})
		return
	}

	c.JSON(http.StatusOK, created)
}

// ListComplaints повертає скарги з необов'язковими фільтрами ?status= та ?category=
func (h *Handler) ListComplaints(c *gin.Context) {
	complaints, err := h.Complaints.List(c.Query("status"), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list complaints"})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// NearbyComplaints повертає скарги в радіусі від точки, найближчі першими
func (h *Handler) NearbyComplaints(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
		return
	}

	// Типовий радіус діє лише коли параметр відсутній; явний 0 — це 0
	radius := config.DefaultRadiusMeters
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius"})
			return
		}
	}

	complaints, err := h.Complaints.ListNearby(lat, lon, radius)
	if err != nil {
		if errors.Is(err, complaint.ErrInvalidCoordinates) || errors.Is(err, complaint.ErrInvalidRadius) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list complaints"})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// UserComplaints повертає всі скарги вказаного користувача
func (h *Handler) UserComplaints(c *gin.Context) {
	complaints, err := h.Complaints.ListByUser(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list complaints"})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// GetComplaint повертає одну скаргу за ID
func (h *Handler) GetComplaint(c *gin.Context) {
	found, err := h.Complaints.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, complaint.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load complaint"})
		return
	}
	c.JSON(http.StatusOK, found)
}

// UpdateComplaint застосовує частковий патч (лише для адміністраторів)
func (h *Handler) UpdateComplaint(c *gin.Context) {
	var patch complaint.UpdatePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.Complaints.Update(c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, complaint.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update complaint"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
