package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mindcare/internal/services"
	"mindcare/pkg/utils"
)

const principalKey = "principal"

// Authenticator resolves a bearer token to the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (services.Principal, error)
}

func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		principal, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			// Only a rejected token is a 401; clients renew on 401.
			if errors.Is(err, utils.ErrUnauthenticated) {
				utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			} else {
				utils.HandleServiceError(c, err)
			}
			c.Abort()
			return
		}

		// Pass user information to the next handler
		c.Set(principalKey, principal)
		c.Set("user_id", principal.ID.String())
		c.Set("role", string(principal.Role))
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by JWTAuthMiddleware.
func PrincipalFrom(c *gin.Context) (services.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return services.Principal{}, false
	}
	p, ok := v.(services.Principal)
	return p, ok
}
