package handler

import (
	"log"

	"main/dto"
	"main/middleware"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

func LoginHandler(c *gin.Context, sessionRepo *repository.SessionRepo, activityLog *services.ActivityLogger) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUserByUsername(req.Username)
	if err != nil {
		log.Printf("Error finding user %s: %v", req.Username, err)
		utils.InternalError(c, "Login failed")
		return
	}
	if user == nil || !services.ComparePasswords(user.Password, req.Password) {
		utils.TrackAuthAttempt("failure", "login")
		activityLog.RecordSystem(model.ActivityLog{
			ActorID:    req.Username,
			Method:     "POST",
			Path:       "/api/auth/login",
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			StatusCode: 401,
			Note:       "rejected: invalid credentials",
		})
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	if !user.IsActive {
		utils.TrackAuthAttempt("failure", "login")
		utils.Forbidden(c, "Account is disabled")
		return
	}

	if user.TwoFactorEnabled {
		if req.TOTPCode == "" {
			utils.Unauthorized(c, "2FA code required")
			return
		}
		if !totp.Validate(req.TOTPCode, user.TwoFactorSecret) {
			utils.TrackAuthAttempt("failure", "2fa")
			utils.Unauthorized(c, "Invalid 2FA code")
			return
		}
	}

	accessToken, err := services.GenerateToken(user.UserID, user.Role)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if err := middleware.CreateSession(c, user.UserID, sessionRepo); err != nil {
		log.Printf("Warning: Failed to create session: %v", err)
	}

	// The activity record for this request is built at flush time from the
	// context; without this the login would be logged with no actor.
	c.Set("user_id", user.UserID)

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"user_id":  user.UserID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
