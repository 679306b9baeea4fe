package middleware

import (
	"net/http"
	"strings"

	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores claims in context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Logger.Error().Err(err).Msg("token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid token: " + err.Error(),
				"code":    "INVALID_TOKEN",
			})
			return
		}

		if claims["id"] == nil || claims["role"] == nil || claims["username"] == nil {
			utils.Logger.Warn().Interface("claims", claims).Msg("token missing required claims")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "token missing required claims",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// PermissionMiddleware gates a route on a role permission.
func PermissionMiddleware(resource string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.GetUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "not authenticated",
				"code":    "UNAUTHENTICATED",
			})
			return
		}

		role := models.UserRole(user.Role)
		if !utils.HasPermission(role, resource, action) {
			utils.Logger.Info().
				Str("username", user.Username).
				Str("role", user.Role).
				Str("resource", resource).
				Str("action", action).
				Msg("insufficient permission")

			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "insufficient permission",
				"code":    "INSUFFICIENT_PERMISSION",
			})
			return
		}

		c.Next()
	}
}
