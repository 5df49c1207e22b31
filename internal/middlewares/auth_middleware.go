package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pdbstore/internal/utils"
)

// SubjectKey is the gin context key holding the authenticated token subject.
const SubjectKey = "subject"

// Authenticate requires a Bearer HS256 token signed with secret. With an
// empty secret authentication is disabled and every request passes.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing Authorization header"})
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization format"})
			return
		}

		claims, err := utils.VerifyJWT(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(SubjectKey, claims.Subject)

		c.Next()
	}
}
