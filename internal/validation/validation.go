// Package validation provides input validation utilities for request bodies.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks that email looks like a deliverable address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > 254 || !emailRegex.MatchString(email) {
		return fmt.Errorf("Please include a valid email")
	}
	return nil
}

// ValidatePassword enforces the account password policy.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("Please enter a password with 6 or more characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("Password must not exceed 128 characters")
	}
	return nil
}

// Required returns msg as an error when value is empty after trimming.
func Required(value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s", msg)
	}
	return nil
}
