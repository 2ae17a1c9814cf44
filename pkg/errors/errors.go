package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Package tree errors
	ErrPackageRoot   ErrorCode = "PACKAGE_ROOT"
	ErrPackageAccess ErrorCode = "PACKAGE_ACCESS"

	// Decision errors
	ErrDecisionRead  ErrorCode = "DECISION_READ"
	ErrDecisionWrite ErrorCode = "DECISION_WRITE"
	ErrPrompt        ErrorCode = "PROMPT"

	// Manifest errors
	ErrManifestRender ErrorCode = "MANIFEST_RENDER"
	ErrManifestWrite  ErrorCode = "MANIFEST_WRITE"
	ErrBackupRotate   ErrorCode = "BACKUP_ROTATE"

	// Target config errors
	ErrPatchRead  ErrorCode = "PATCH_READ"
	ErrPatchWrite ErrorCode = "PATCH_WRITE"

	// External configurator errors
	ErrConfiguratorMissing  ErrorCode = "CONFIGURATOR_MISSING"
	ErrConfiguratorFailed   ErrorCode = "CONFIGURATOR_FAILED"
	ErrConfiguratorReported ErrorCode = "CONFIGURATOR_REPORTED"

	// Mirror and versioning errors
	ErrMirrorSync   ErrorCode = "MIRROR_SYNC"
	ErrVersionState ErrorCode = "VERSION_STATE"
)

// ModlistError represents a structured error with code and details
type ModlistError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModlistError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModlistError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModlistError) Is(target error) bool {
	var targetErr *ModlistError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModlistError with the given code and message
func New(code ErrorCode, message string) *ModlistError {
	return &ModlistError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModlistError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModlistError {
	return &ModlistError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModlistError
func Wrap(err error, code ErrorCode, message string) *ModlistError {
	if err == nil {
		return nil
	}
	return &ModlistError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModlistError {
	if err == nil {
		return nil
	}
	return &ModlistError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModlistError) WithDetail(key string, value interface{}) *ModlistError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var modErr *ModlistError
	if errors.As(err, &modErr) {
		return modErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModlistError
func GetErrorCode(err error) ErrorCode {
	var modErr *ModlistError
	if errors.As(err, &modErr) {
		return modErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ModlistError
func GetErrorDetails(err error) map[string]interface{} {
	var modErr *ModlistError
	if errors.As(err, &modErr) {
		return modErr.Details
	}
	return nil
}
