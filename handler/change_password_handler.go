package handler

import (
	"log"

	"main/dto"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func ChangePasswordHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUser(userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}

	if !services.ComparePasswords(user.Password, req.OldPassword) {
		utils.Unauthorized(c, "Current password is incorrect")
		return
	}
	if req.OldPassword == req.NewPassword {
		utils.BadRequest(c, "New password must differ from the current one")
		return
	}

	hashedPassword, err := services.HashPassword(req.NewPassword)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if _, err := userRepo.UpdateUserPassword(user.UserID, hashedPassword); err != nil {
		log.Printf("Error updating password for %s: %v", user.UserID, err)
		utils.InternalError(c, "Failed to update password")
		return
	}

	utils.Success(c, gin.H{"message": "Password updated successfully"})
}
