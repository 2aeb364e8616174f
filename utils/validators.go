package utils

import (
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

// InitValidator registers the custom "password" rule on both the shared
// validator and Gin's binding engine so struct tags can use it.
func InitValidator() {
	Validate = validator.New()
	Validate.RegisterValidation("password", ValidatePasswordRule)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("password", ValidatePasswordRule)
	}
}

func ValidatePasswordRule(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String())
}

// ValidatePassword requires at least 6 characters, one digit and one
// special character.
func ValidatePassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsNumber(r):
			hasNumber = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSpecial = true
		}
		if hasNumber && hasSpecial {
			return true
		}
	}
	return false
}
