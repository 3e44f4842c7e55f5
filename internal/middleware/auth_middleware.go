package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/internal/app/service"
	"github.com/pesabot/pesabot-backend/internal/errors"
)

// Context key for the authenticated admin
const AdminKey = "admin"

type AuthMiddleware struct {
	authService service.AuthService
}

func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate resolves the bearer token against the store and aborts with
// 401 when it is missing, unknown, or expired.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header")
			c.Abort()
			return
		}

		admin, err := m.authService.VerifyToken(parts[1])
		if err != nil {
			log.Error("Token verification failed", err, map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.InternalError(c, "")
			c.Abort()
			return
		}
		if admin == nil {
			log.Warn("Rejected invalid or expired token", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(AdminKey, admin)

		log.Debug("Admin authenticated successfully", map[string]interface{}{
			"admin_id": admin.ID,
			"email":    admin.Email,
		})

		c.Next()
	}
}

// GetAdmin extracts the authenticated admin from context
func GetAdmin(c *gin.Context) (*model.Admin, bool) {
	value, exists := c.Get(AdminKey)
	if !exists {
		return nil, false
	}
	admin, ok := value.(*model.Admin)
	return admin, ok
}
