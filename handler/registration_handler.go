package handler

import (
	"log"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context) {
	var req dto.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	// Signup is open for users and hotel owners. Admin is never
	// self-assigned; any other requested role falls back to user.
	role := model.RoleUser
	if req.Role == model.RoleHotelOwner {
		role = model.RoleHotelOwner
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)

	if existing, err := userRepo.FindUserByUsername(req.Username); err != nil {
		utils.InternalError(c, "Failed to check username availability")
		return
	} else if existing != nil {
		utils.Conflict(c, "Username already exists")
		return
	}

	hashedPassword, err := services.HashPassword(req.Password)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user := &model.User{
		UserID:    utils.GenerateID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: time.Now(),
		IsActive:  true,
	}

	if _, err := userRepo.AddUser(c.Request.Context(), user); err != nil {
		log.Printf("Error creating user: %v", err)
		utils.InternalError(c, "Failed to create user")
		return
	}

	utils.TrackAuthAttempt("success", "register")
	utils.Created(c, gin.H{
		"user_id":  user.UserID,
		"username": user.Username,
		"role":     user.Role,
	})
}
