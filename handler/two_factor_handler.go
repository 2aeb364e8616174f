package handler

import (
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

// Generate2FAHandler creates a fresh TOTP secret for the caller to scan.
func Generate2FAHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUser(userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "StayBase",
		AccountName: user.Username,
	})
	if err != nil {
		utils.InternalError(c, "Failed to generate 2FA secret")
		return
	}

	utils.Success(c, gin.H{
		"secret": key.Secret(),
		"url":    key.URL(),
	})
}

func Enable2FAHandler(c *gin.Context) {
	var req struct {
		Secret string `json:"secret" binding:"required"`
		Code   string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userID, _ := c.Get("user_id")
	userRepo := repository.GetUserRepo(utils.MongoClient)

	user, err := userRepo.FindUser(userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}
	if user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is already enabled")
		return
	}

	if !totp.Validate(req.Code, req.Secret) {
		utils.TrackAuthAttempt("failure", "2fa")
		utils.BadRequest(c, "Invalid 2FA code")
		return
	}

	recoveryCodes, err := utils.GenerateRecoveryCodes()
	if err != nil {
		utils.InternalError(c, "Failed to generate recovery codes")
		return
	}

	if err := userRepo.UpdateTwoFactor(user.UserID, req.Secret, true, utils.HashRecoveryCodes(recoveryCodes)); err != nil {
		utils.InternalError(c, "Failed to enable 2FA")
		return
	}

	utils.TrackAuthAttempt("success", "2fa")
	utils.Success(c, gin.H{
		"message":        "2FA enabled",
		"recovery_codes": recoveryCodes,
	})
}

func Disable2FAHandler(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userID, _ := c.Get("user_id")
	userRepo := repository.GetUserRepo(utils.MongoClient)

	user, err := userRepo.FindUser(userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}
	if !user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is not enabled")
		return
	}

	valid := totp.Validate(req.Code, user.TwoFactorSecret)
	if !valid {
		// Fall back to a recovery code
		hashed := utils.HashString(req.Code)
		for _, code := range user.RecoveryCodes {
			if code == hashed {
				valid = true
				break
			}
		}
	}
	if !valid {
		utils.BadRequest(c, "Invalid 2FA code")
		return
	}

	if err := userRepo.UpdateTwoFactor(user.UserID, "", false, nil); err != nil {
		utils.InternalError(c, "Failed to disable 2FA")
		return
	}

	utils.Success(c, gin.H{"message": "2FA disabled"})
}
