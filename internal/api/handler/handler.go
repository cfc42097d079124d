package handler

import (
	"civicgo/backend/internal/analytics"
	"civicgo/backend/internal/auth"
	"civicgo/backend/internal/complaint"
	"civicgo/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler тримає посилання на сервіси застосунку
type Handler struct {
	Auth       *auth.Service
	Complaints *complaint.Service
	Analytics  *analytics.Service
	Storage    storage.Storage
}

func NewHandler(authSvc *auth.Service, complaintSvc *complaint.Service, analyticsSvc *analytics.Service, s storage.Storage) *Handler {
	return &Handler{
		Auth:       authSvc,
		Complaints: complaintSvc,
		Analytics:  analyticsSvc,
		Storage:    s,
	}
}

// RegisterRoutes реєструє всі маршрути на gin-рушії.
// Використовується і сервером, і тестами.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// Публічні маршрути
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/categories", h.ListCategories)

	// Маршрути, що вимагають дійсного bearer-токена (будь-яка роль)
	authed := r.Group("")
	authed.Use(h.RequireAuth())
	authed.GET("/auth/me", h.Me)
	authed.POST("/complaints", h.CreateComplaint)
	authed.GET("/complaints", h.ListComplaints)
	authed.GET("/complaints/nearby", h.NearbyComplaints)
	authed.GET("/complaints/user/:user_id", h.UserComplaints)
	authed.GET("/complaints/:id", h.GetComplaint)

	// Лише для адміністраторів
	admin := authed.Group("")
	admin.Use(h.RequireAdmin())
	admin.PUT("/complaints/:id", h.UpdateComplaint)
	admin.GET("/analytics/stats", h.Stats)
	admin.GET("/analytics/category-breakdown", h.CategoryBreakdown)
	admin.GET("/ws/feed", h.ServeFeed)
}
