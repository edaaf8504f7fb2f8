package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
// Higher values are more secure but slower
const BcryptCost = 12

// HashPassword generates a bcrypt hash from a plain text password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a plain text password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Credentials is the single local login pair. PasswordHash wins over the
// plain Password when both are configured.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Verify checks a submitted username/password against the configured
// credentials. The plain-password path uses a constant-time comparison.
func (c Credentials) Verify(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) != 1 {
		return false
	}
	if strings.TrimSpace(c.PasswordHash) != "" {
		return CheckPasswordHash(password, c.PasswordHash)
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
}
