package model

import "time"

// Roles assigned to an account. Anonymous is derived at request time
// when no valid credential is presented; it is never stored.
const (
	RoleAdmin      = "admin"
	RoleHotelOwner = "hotel_owner"
	RoleUser       = "user"
	RoleAnonymous  = "anonymous"
)

type User struct {
	UserID             string    `bson:"user_id" json:"user_id"`
	Username           string    `bson:"username" json:"username" validate:"required,min=4,max=20"`
	Email              string    `bson:"email" json:"email" validate:"required,email"`
	Password           string    `bson:"password" json:"-" validate:"required,min=6"` // argon2id salt$hash
	Role               string    `bson:"role" json:"role"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	LastPasswordChange time.Time `bson:"last_password_change,omitempty" json:"-"`
	IsActive           bool      `bson:"is_active" json:"is_active"`
	TwoFactorSecret    string    `bson:"two_factor_secret,omitempty" json:"-"`
	TwoFactorEnabled   bool      `bson:"two_factor_enabled" json:"two_factor_enabled"`
	RecoveryCodes      []string  `bson:"recovery_codes,omitempty" json:"-"`
}

// ValidRole reports whether role is one of the storable account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHotelOwner, RoleUser:
		return true
	}
	return false
}
