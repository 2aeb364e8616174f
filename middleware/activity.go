package middleware

import (
	"log"
	"time"

	"main/services"

	"github.com/gin-gonic/gin"
)

// ActivityMiddleware records every finished request into the activity
// logger. It runs after the handler so the final status code and elapsed
// time are known. Recording must never fail the request.
func ActivityMiddleware(logger *services.ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		defer func() {
			if r := recover(); r != nil {
				log.Printf("Warning: activity recording panicked: %v", r)
			}
		}()
		logger.RecordRequest(c, c.Writer.Status(), time.Since(start))
	}
}
