package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrey1104/train-station-api-service/internal/authz"
	"github.com/Andrey1104/train-station-api-service/internal/helpers"
)

// Authorize checks the capability for (action, kind) before the handler runs.
// Anonymous callers get 401, authenticated but unprivileged callers get 403.
func Authorize(authorizer *authz.Authorizer, kind authz.Kind, action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)

		allowed, err := authorizer.Allow(c.Request.Context(), principal, action, kind)
		if err != nil {
			log.Printf("authz %s %s: %v", action, kind, err)
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to evaluate permissions.")
			return
		}

		if !allowed {
			if !principal.Authenticated {
				helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}
			helpers.RespondWithError(c, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}

		c.Next()
	}
}
