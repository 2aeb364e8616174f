package handler

import (
	"log"
	"strings"

	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	accessToken := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	c.ShouldBindJSON(&req)

	if err := services.BlacklistTokens(accessToken, req.RefreshToken); err != nil {
		log.Printf("Warning: Failed to blacklist tokens: %v", err)
	}

	if sessionID, err := c.Cookie("session_id"); err == nil {
		if session, err := sessionRepo.GetSession(sessionID); err == nil && session != nil {
			session.IsActive = false
			sessionRepo.UpdateSession(session)
		}
		c.SetCookie("session_id", "", -1, "/", "", true, true)
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}

func LogoutAllSessions(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	count, err := sessionRepo.EndAllUserSessions(userID.(string))
	if err != nil {
		log.Printf("Error ending sessions for %s: %v", userID, err)
		utils.InternalError(c, "Failed to end sessions")
		return
	}

	utils.Success(c, gin.H{"sessions_ended": count})
}
