package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"splitmate/internal/pkg/jwtutil"
	"splitmate/internal/transport/http/response"
)

const ContextUserIDKey = "user_id"

// AuthJWT guards protected routes. A missing header, an empty token, an
// expired token and a failed verification each get their own rejection, in
// that order; the request only reaches the handler with a user id attached.
// The middleware touches no storage.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "token not found")
			c.Abort()
			return
		}

		// The Bearer prefix is conventional but optional; a bare token in
		// the header is accepted as-is.
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			if errors.Is(err, jwtutil.ErrTokenExpired) {
				response.Error(c, http.StatusUnauthorized, "token expired")
			} else {
				response.Error(c, http.StatusUnauthorized, "invalid or expired token")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID pulls the authenticated user id the gate attached to the request.
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
