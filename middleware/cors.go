package middleware

import (
	"net/http"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware sets the cross-origin headers for the browser frontend.
// The rate-limit headers are exposed so clients can back off before
// hitting a ceiling.
func CORSMiddleware() gin.HandlerFunc {
	origin := utils.GetEnvAsString("CORS_ALLOWED_ORIGIN", "*")
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Expose-Headers", "X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset")
		h.Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
