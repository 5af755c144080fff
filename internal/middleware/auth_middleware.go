package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Andrey1104/train-station-api-service/internal/authz"
	"github.com/Andrey1104/train-station-api-service/internal/helpers"
	"github.com/Andrey1104/train-station-api-service/internal/models"
)

const principalKey = "principal"

// JWTAuthMiddleware resolves the bearer token into a principal. Requests
// without an Authorization header continue as anonymous; a bad token is
// rejected outright.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(principalKey, authz.Anonymous())
			c.Next()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authorization header must use the Bearer scheme.")
			return
		}

		claims, err := helpers.ParseToken(secret, tokenString)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		c.Set(principalKey, authz.Principal{
			UserID:        claims.UserID,
			Authenticated: true,
			Admin:         claims.Role == models.RoleAdmin,
		})
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// GetPrincipal returns the caller resolved by JWTAuthMiddleware, or an
// anonymous principal when the middleware did not run.
func GetPrincipal(c *gin.Context) authz.Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return authz.Anonymous()
	}
	principal, ok := value.(authz.Principal)
	if !ok {
		return authz.Anonymous()
	}
	return principal
}

// RequireAuthenticated rejects anonymous callers.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetPrincipal(c).Authenticated {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		c.Next()
	}
}
