// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"
)

var (
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// phoneRe matches international numbers like "+999999999", up to 15 digits.
	phoneRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

// allowed extensions for profile pictures and post images
var allowedImageExtensions = map[string]bool{
	".png": true,
	".jpg": true,
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return fmt.Errorf("password must be at least 12 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	hasUpper := false
	hasLower := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !digitRe.MatchString(password) {
		return fmt.Errorf("password must contain at least one digit")
	}
	if !specialRe.MatchString(password) {
		return fmt.Errorf("password must contain at least one special character (!@#$%%^&*)")
	}

	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}
	if !regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}
	if username[0] == '_' || username[0] == '-' || username[len(username)-1] == '_' || username[len(username)-1] == '-' {
		return fmt.Errorf("username cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePhoneNumber checks that a phone number is in international
// format: an optional "+", up to 15 digits.
func ValidatePhoneNumber(phone string) error {
	if len(phone) > 17 {
		return fmt.Errorf("phone number must not exceed 17 characters")
	}
	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("phone number must be in the format: '+999999999', up to 15 digits allowed")
	}

	return nil
}

// ValidateImagePath checks that an image path carries an allowed extension.
func ValidateImagePath(p string) error {
	ext := strings.ToLower(path.Ext(p))
	if !allowedImageExtensions[ext] {
		return fmt.Errorf("image must have one of the following extensions: png, jpg")
	}

	return nil
}
