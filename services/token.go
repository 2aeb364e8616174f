package services

import (
	"errors"
	"fmt"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by both access and refresh tokens. Role travels in the
// token so middleware can classify a request without a database read.
type TokenClaims struct {
	UserID string
	Role   string
}

// GenerateToken creates a signed access token for the user
func GenerateToken(userID, role string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.JWTExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iss":     "staybase",
		"iat":     time.Now().Unix(),
		"exp":     expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// GenerateRefreshToken creates a signed refresh token for the user
func GenerateRefreshToken(userID, role string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.RefreshTokenExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"type":    "refresh",
		"iss":     "staybase",
		"iat":     time.Now().Unix(),
		"exp":     expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ParseToken validates the signature and expiry of a token and returns its
// claims. Any failure (missing, malformed, expired, bad signature) is an
// error; callers decide whether that is fatal or just degrades the role.
func ParseToken(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errors.New("missing user_id claim")
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = "user"
	}

	return &TokenClaims{UserID: userID, Role: role}, nil
}

// IsRefreshToken reports whether the claims belong to a refresh token.
func IsRefreshToken(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	tokenType, _ := claims["type"].(string)
	return tokenType == "refresh"
}
