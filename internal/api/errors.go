// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "errors"

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Status  int // HTTP status, 0 for transport-level failures
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota

	// ErrTypeNetwork is a transport failure: connection refused, DNS,
	// timeout. No HTTP response was received.
	ErrTypeNetwork

	// ErrTypeHTTP is a non-2xx response other than 401. Message carries
	// the backend's error payload when one could be parsed.
	ErrTypeHTTP

	// ErrTypeUnauthorized is a 401. The session has already been cleared
	// by the time the caller sees this error.
	ErrTypeUnauthorized

	// ErrTypeDecode is a 2xx response whose body did not match the
	// endpoint's canonical envelope. Shape deviations are hard errors,
	// never silently absorbed.
	ErrTypeDecode

	// ErrTypeValidation is a client-side rejection raised before any
	// network call (malformed email, short OTP, empty field).
	ErrTypeValidation
)

// Sentinel errors for easy checking.
var (
	ErrUnauthorized = &ClientError{Type: ErrTypeUnauthorized, Status: 401, Message: "unauthorized"}
)

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// NewValidationError creates a client-side validation failure.
func NewValidationError(message string) *ClientError {
	return &ClientError{Type: ErrTypeValidation, Message: message}
}

// NewDecodeError wraps a response-shape mismatch.
func NewDecodeError(message string, cause error) *ClientError {
	return &ClientError{Type: ErrTypeDecode, Message: message, Cause: cause}
}

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

// IsUnauthorized checks if an error is a 401 / logged-out error.
func IsUnauthorized(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnauthorized
	}
	return errors.Is(err, ErrUnauthorized)
}

// IsNetwork checks if an error is a transport-level failure.
func IsNetwork(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrTypeNetwork
}

// IsValidation checks if an error is a client-side validation rejection.
func IsValidation(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrTypeValidation
}

// IsDecode checks if an error is a response-shape mismatch.
func IsDecode(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrTypeDecode
}

// UserMessage extracts the most precise user-facing message an error
// carries: the parsed backend payload when present, a generic fallback
// otherwise.
func UserMessage(err error, fallback string) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Message != "" {
		return clientErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
