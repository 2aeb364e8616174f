package handler

import (
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if services.IsTokenBlacklisted(req.RefreshToken) {
		utils.Unauthorized(c, "Token has been invalidated")
		return
	}
	if !services.IsRefreshToken(req.RefreshToken) {
		utils.Unauthorized(c, "Invalid token type")
		return
	}

	claims, err := services.ParseToken(req.RefreshToken)
	if err != nil {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Invalid token")
		return
	}

	accessToken, err := services.GenerateToken(claims.UserID, claims.Role)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(claims.UserID, claims.Role)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	// Rotate: old refresh token is no longer valid
	services.BlacklistTokens("", req.RefreshToken)

	utils.TrackAuthAttempt("success", "refresh")
	utils.Success(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}
