package handler

import (
	"log"

	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetActiveSessions(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	sessions, err := sessionRepo.GetUserSessions(userID.(string))
	if err != nil {
		log.Printf("Error listing sessions for %s: %v", userID, err)
		utils.InternalError(c, "Failed to list sessions")
		return
	}

	utils.Success(c, gin.H{"sessions": sessions})
}
