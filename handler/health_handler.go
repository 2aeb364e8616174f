package handler

import (
	"context"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers the unthrottled liveness probe.
func HealthHandler(c *gin.Context) {
	utils.Success(c, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

// StatusHandler reports dependency health plus host resource usage.
func StatusHandler(c *gin.Context) {
	mongoOK := false
	if utils.MongoClient != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		mongoOK = utils.MongoClient.Ping(ctx, nil) == nil
	}

	redisOK := services.TokenBlacklist.IsConnected()

	utils.Success(c, gin.H{
		"status": "ok",
		"dependencies": gin.H{
			"mongo": mongoOK,
			"redis": redisOK,
		},
		"system": gin.H{
			"cpu_percent":    utils.GetCPUUsage(),
			"memory_percent": utils.GetMemoryUsage(),
		},
	})
}
