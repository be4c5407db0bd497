package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/doctors-portal-api/internal/auth"
	"github.com/clinicware/doctors-portal-api/internal/store"
)

// EmailKey is the gin context key holding the authenticated caller's email.
const EmailKey = "decodedEmail"

// RequireAuth verifies the bearer token. A missing header is 401; a
// malformed, invalid, or expired token is 403. On success the decoded email
// is set in the context and the chain continues.
func RequireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token format"})
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// RequireAdmin looks up the authenticated caller's stored role and lets the
// request through only for admins. Must run after RequireAuth.
func RequireAdmin(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get(EmailKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		user, err := s.UserByEmail(c.Request.Context(), email.(string))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		c.Next()
	}
}
