package middleware

import (
	"net/http"
	"strings"

	"flowermart-be/internal/user"

	"github.com/gin-gonic/gin"
)

const claimsKey = "authClaims"

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Auth parses the bearer token when present. With required=true a
// missing or invalid token aborts the request; with required=false the
// request continues as a guest.
func Auth(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
				return
			}
			c.Next()
			return
		}

		claims, err := user.ParseJWT(token)
		if err != nil {
			if required {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "invalid token"})
				return
			}
			c.Next()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GetClaims returns the authenticated identity, if any.
func GetClaims(c *gin.Context) (*user.CustomClaims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}

	claims, ok := v.(*user.CustomClaims)
	return claims, ok
}

// RequireAdmin gates admin-only routes. It assumes Auth(true) ran first.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok || claims.Role != string(user.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}
