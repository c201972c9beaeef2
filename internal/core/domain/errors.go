// Package domain defines the core domain types for plainsight.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
// Codes have the form PS-<AREA>-<NNNN>; the first three digits follow the
// closest HTTP status.
type DomainError struct {
	Code    string // Error code (e.g., "PS-STEG-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true // Only check if it's a DomainError
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Steganography Errors (STEG)
// ============================================================================

var (
	// ErrCapacity indicates the payload plus terminator does not fit the carrier.
	ErrCapacity = NewDomainError("PS-STEG-4130", "image is too small to hold the message")

	// ErrNoMessageFound indicates no terminator was found in the carrier.
	ErrNoMessageFound = NewDomainError("PS-STEG-4040", "no encoded message in the image")

	// ErrDecode indicates the recovered payload is not valid text.
	ErrDecode = NewDomainError("PS-STEG-4220", "recovered payload is not valid utf-8")
)

// ============================================================================
// Cipher Errors (CRYP)
// ============================================================================

var (
	// ErrAuthentication indicates a token failed authentication. A wrong
	// passkey and a corrupted token are reported identically.
	ErrAuthentication = NewDomainError("PS-CRYP-4010", "wrong passkey or corrupted message")

	// ErrFormat indicates a token is structurally malformed.
	ErrFormat = NewDomainError("PS-CRYP-4000", "malformed token")

	// ErrKeyDerivation indicates the passkey could not be turned into a key.
	ErrKeyDerivation = NewDomainError("PS-CRYP-5000", "key derivation failed")
)

// ============================================================================
// Image Errors (IMG)
// ============================================================================

var (
	// ErrUnsupportedImage indicates the image format cannot be decoded or encoded.
	ErrUnsupportedImage = NewDomainError("PS-IMG-4150", "unsupported image format")

	// ErrInvalidImagePath indicates a path that does not name a usable image file.
	ErrInvalidImagePath = NewDomainError("PS-IMG-4001", "invalid image path")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrEmptyArgument indicates a required value was empty.
	ErrEmptyArgument = NewDomainError("PS-ARG-4001", "value must not be empty")

	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("PS-ARG-4002", "invalid argument")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternal indicates an unexpected internal failure.
	ErrInternal = NewDomainError("PS-SYS-5000", "internal error")

	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = NewDomainError("PS-SYS-4000", "bad request")

	// ErrRequestTooLarge indicates an upload above the configured limit.
	ErrRequestTooLarge = NewDomainError("PS-SYS-4131", "request body too large")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewDomainError("PS-SYS-4290", "too many requests")

	// ErrUnavailable indicates the server is not accepting work.
	ErrUnavailable = NewDomainError("PS-SYS-5030", "service unavailable")
)
