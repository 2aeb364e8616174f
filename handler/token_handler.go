package handler

import (
	"strings"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// ValidateTokenHandler lets clients check a token without consuming a
// rate-limit slot; the path sits on the limiter bypass list.
func ValidateTokenHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	if services.IsTokenBlacklisted(tokenString) {
		utils.Unauthorized(c, "Token has been invalidated")
		return
	}

	claims, err := services.ParseToken(tokenString)
	if err != nil {
		utils.Unauthorized(c, "Invalid token")
		return
	}

	utils.Success(c, gin.H{
		"valid":   true,
		"user_id": claims.UserID,
		"role":    claims.Role,
	})
}
