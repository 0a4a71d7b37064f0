package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireSession gates dashboard API routes behind the session cookie.
func RequireSession(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !VerifySession(token, secret) {
			c.SetCookie(CookieName, "", -1, "/", "", false, true)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}
		c.Next()
	}
}

// RequireSessionOrBearer additionally accepts an Authorization: Bearer token.
// The extension can't carry cookies cross-origin, so the scan and extract
// paths take the session token in the header instead.
func RequireSessionOrBearer(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if VerifySession(token, secret) {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		token, err := c.Cookie(CookieName)
		if err != nil || token == "" || !VerifySession(token, secret) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
