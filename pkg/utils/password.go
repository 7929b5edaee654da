package utils

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost        = 12
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit in bytes
	PasswordSpecials  = "@$!%*?&"
)

var ErrWeakPassword = errors.New("password must be 8 to 72 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character (@$!%*?&)")

// HashPassword returns a salted bcrypt hash.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidatePassword accepts only [A-Za-z0-9@$!%*?&] and requires one of each class.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return ErrWeakPassword
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r > unicode.MaxASCII:
			return ErrWeakPassword
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSpecials, r):
			special = true
		default:
			return ErrWeakPassword
		}
	}

	if !lower || !upper || !digit || !special {
		return ErrWeakPassword
	}
	return nil
}
