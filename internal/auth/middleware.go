package auth

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// errorBody matches the handlers' error response shape.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Middleware authenticates the bearer token, upserts the caller and stores
// their id and role in the gin context.
func Middleware(parser TokenParser, users services.UserService, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Code: "unauthenticated", Message: "Missing bearer token"})
			return
		}

		identity, err := parser.Parse(strings.TrimSpace(token))
		if err != nil {
			logger.Warn("Rejected token", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Code: "unauthenticated", Message: "Invalid or expired token"})
			return
		}

		user, err := users.EnsureUser(c.Request.Context(), identity)
		if err != nil {
			logger.LogError(err, "Failed to sync user", "user_id", identity.ID)
			if services.IsValidation(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Code: "unauthenticated", Message: "Token is missing required claims"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Code: "internal", Message: "Internal server error"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, errorBody{Code: "forbidden", Message: "Insufficient permissions"})
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func Role(c *gin.Context) models.UserRole {
	if v, ok := c.Get(ContextUserRole); ok {
		if role, ok := v.(models.UserRole); ok {
			return role
		}
	}
	return ""
}
