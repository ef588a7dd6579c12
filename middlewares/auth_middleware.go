package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cafesys/cafe-backend/auth"
	"github.com/cafesys/cafe-backend/utils"
)

const identityKey = "identity"

// AuthMiddleware resolves the acting identity from the bearer token and
// stores it in the request context. Every protected route runs behind it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		role, ok := auth.ParseRole(claims.Role)
		if !ok || claims.Login == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid identity in token"))
			c.Abort()
			return
		}

		c.Set(identityKey, auth.Identity{Login: claims.Login, Role: role})
		c.Next()
	}
}

// IdentityFrom returns the acting identity placed by AuthMiddleware.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
