package handler

import (
	"net/http"
	"strings"

	"civicgo/backend/internal/auth"
	"civicgo/backend/internal/config"
	"civicgo/backend/internal/models"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// RequireAuth перевіряє bearer-токен і повторно резолвить користувача
// у сховищі: сам по собі дійсний токен недостатній, акаунт мусить існувати.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := h.Auth.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		user, err := h.Auth.Lookup(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrUserNotFound.Error()})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin пропускає далі лише користувачів з роллю "admin".
// Роль береться з актуального запису в сховищі, а не з токена.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != config.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}
		c.Next()
	}
}

// CurrentUser дістає автентифікованого користувача з контексту запиту.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
