package service

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives an irreversible credential from a plaintext password.
// bcrypt salts each call, so hashing the same password twice yields
// different credentials.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored credential.
// bcrypt's comparison is constant time over the derived key.
func CheckPassword(plaintext, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
