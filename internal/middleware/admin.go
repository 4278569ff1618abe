package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// VerifyAdmin пропускает запрос только с верным заголовком Admin-Password
func VerifyAdmin(adminPassword string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader("Admin-Password")

		if adminPassword == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(adminPassword)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
