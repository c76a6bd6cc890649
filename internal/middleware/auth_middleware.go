package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/harborview/booking-backend/pkg/jwt"
)

// GuestContextKey is the key used to store the authenticated guest in
// the Gin context
const GuestContextKey = "guest"

// GuestContext represents the authenticated guest's information as
// resolved from the access token
type GuestContext struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

// Actor converts the guest context to the actor shape the engine
// consumes
func (g GuestContext) Actor() models.Actor {
	return models.Actor{ID: g.ID, Role: g.Role}
}

// AuthMiddleware creates a middleware that validates JWT access tokens
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			message := "Invalid access token"
			if jwtService.IsTokenExpired(parts[1]) {
				message = "Access token has expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": message,
			})
			c.Abort()
			return
		}

		role := models.Role(claims.Role)
		if role != models.RoleAdmin {
			role = models.RoleGuest
		}

		c.Set(GuestContextKey, GuestContext{
			ID:    claims.GuestID,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  role,
		})

		c.Next()
	}
}

// RequireAdmin creates a middleware that rejects non-admin callers
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		guest, exists := GetGuestContext(c)
		if !exists || !guest.Actor().IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetGuestContext retrieves the authenticated guest from the Gin
// context
func GetGuestContext(c *gin.Context) (GuestContext, bool) {
	value, exists := c.Get(GuestContextKey)
	if !exists {
		return GuestContext{}, false
	}
	guest, ok := value.(GuestContext)
	return guest, ok
}
