package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern is deliberately loose: the backend owns the real check,
// this only catches obvious typos before a network round-trip.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// OTPPattern matches the 6-digit email verification code.
var OTPPattern = regexp.MustCompile(`^[0-9]{6}$`)

const (
	// MaxUsernameLen is the maximum username length
	MaxUsernameLen = 50
	// MinPasswordLen is the minimum password length
	MinPasswordLen = 6
	// MaxPasswordLen is the maximum password length
	MaxPasswordLen = 20
)

// ValidateUsername checks the username length bounds.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}
	return nil
}

// ValidateEmail checks that the address looks like an email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword checks the password length bounds.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}
	return nil
}

// ValidateOTP checks that the code is exactly six digits.
func ValidateOTP(code string) error {
	if !OTPPattern.MatchString(code) {
		return fmt.Errorf("verification code must be 6 digits")
	}
	return nil
}
