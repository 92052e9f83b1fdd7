// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"regexp"
	"strings"

	"github.com/sophiachat/sophia-tui/internal/api"
)

// =============================================================================
// LOCAL VALIDATION
// =============================================================================

// Validation runs before any network call: a request that is obviously
// malformed is rejected locally with a validation error, never sent.

const (
	// OTPLength is the number of digits in a verification code.
	OTPLength = 6

	// PasswordMinLength is the shortest password the backend accepts.
	PasswordMinLength = 6
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	otpRe   = regexp.MustCompile(`^[0-9]{6}$`)
)

// ValidateEmail checks basic address shape.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return api.NewValidationError("email is required")
	}
	if !emailRe.MatchString(email) {
		return api.NewValidationError("invalid email address")
	}
	return nil
}

// ValidateOTP checks that code is exactly six digits.
func ValidateOTP(code string) error {
	if !otpRe.MatchString(code) {
		return api.NewValidationError("verification code must be 6 digits")
	}
	return nil
}

// ValidatePassword checks minimum length.
func ValidatePassword(password string) error {
	if password == "" {
		return api.NewValidationError("password is required")
	}
	if len(password) < PasswordMinLength {
		return api.NewValidationError("password must be at least 6 characters")
	}
	return nil
}

// ValidateName checks that a display name is non-empty.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return api.NewValidationError("name is required")
	}
	return nil
}
