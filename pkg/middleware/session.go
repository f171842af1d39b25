package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"huddle/pkg/utils"
)

const SessionEmailKey = "session_email"

// SessionMiddleware validates the bearer session token and exposes the
// session email to downstream handlers. Admin checks happen against the
// resolved Member, not the token.
func SessionMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateSessionToken(secret, tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(SessionEmailKey, claims.Email)
		c.Next()
	}
}
