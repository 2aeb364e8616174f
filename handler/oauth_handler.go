package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleCallbackHandler completes the OAuth code exchange and issues our
// own tokens. The path is on the rate-limit bypass list so a redirect
// storm from the provider cannot lock users out.
func GoogleCallbackHandler(c *gin.Context) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		utils.InternalError(c, "Google sign-in is not configured")
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "Missing authorization code")
		return
	}

	form := url.Values{
		"code":          {code},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"redirect_uri":  {os.Getenv("GOOGLE_REDIRECT_URI")},
		"grant_type":    {"authorization_code"},
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	resp, err := httpClient.PostForm(googleTokenURL, form)
	if err != nil {
		log.Printf("Error exchanging OAuth code: %v", err)
		utils.InternalError(c, "Failed to complete Google sign-in")
		return
	}
	defer resp.Body.Close()

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil || tokenResp.AccessToken == "" {
		utils.Unauthorized(c, "Google sign-in was rejected")
		return
	}

	req, _ := http.NewRequest(http.MethodGet, googleUserInfoURL, nil)
	req.Header.Set("Authorization", "Bearer "+tokenResp.AccessToken)
	infoResp, err := httpClient.Do(req)
	if err != nil {
		log.Printf("Error fetching Google profile: %v", err)
		utils.InternalError(c, "Failed to complete Google sign-in")
		return
	}
	defer infoResp.Body.Close()

	var profile struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(infoResp.Body).Decode(&profile); err != nil || profile.Email == "" {
		utils.Unauthorized(c, "Google sign-in was rejected")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	username := strings.SplitN(profile.Email, "@", 2)[0]
	user, err := userRepo.FindUserByUsername(username)
	if err != nil {
		utils.InternalError(c, "Failed to look up account")
		return
	}
	if user == nil {
		user = &model.User{
			UserID:    utils.GenerateID(),
			Username:  username,
			Email:     profile.Email,
			Password:  "-", // OAuth accounts have no local password
			Role:      model.RoleUser,
			CreatedAt: time.Now(),
			IsActive:  true,
		}
		if _, err := userRepo.AddUser(c.Request.Context(), user); err != nil {
			log.Printf("Error creating OAuth user: %v", err)
			utils.InternalError(c, "Failed to create account")
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

	utils.TrackAuthAttempt("success", "oauth")
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
