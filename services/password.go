package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"main/utils"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing these invalidates stored hashes, so they
// are constants rather than configuration.
const (
	argonMemory      = 64 * 1024
	argonIterations  = 3
	argonParallelism = 2
	argonKeyLength   = 32
	argonSaltLength  = 16
)

var ErrWeakPassword = errors.New("password must be at least 6 characters and contain at least one number and one special character")

// HashPassword derives an argon2id hash and returns it as
// base64(salt) + "$" + base64(hash).
func HashPassword(password string) (string, error) {
	if !utils.ValidatePassword(password) {
		return "", ErrWeakPassword
	}

	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.New("failed to generate salt")
	}

	key := argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	return base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(key), nil
}

// VerifyPassword re-derives the key from the stored salt and compares in
// constant time.
func VerifyPassword(storedPassword, providedPassword string) (bool, error) {
	salt, storedKey, err := decodeStoredPassword(storedPassword)
	if err != nil {
		return false, err
	}

	key := argon2.IDKey([]byte(providedPassword), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	return subtle.ConstantTimeCompare(key, storedKey) == 1, nil
}

// ComparePasswords is the boolean convenience form of VerifyPassword.
func ComparePasswords(storedHash, plainPassword string) bool {
	match, err := VerifyPassword(storedHash, plainPassword)
	return err == nil && match
}

func decodeStoredPassword(stored string) (salt, key []byte, err error) {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return nil, nil, errors.New("invalid stored password format")
	}
	salt, err = base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, err
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return salt, key, nil
}
