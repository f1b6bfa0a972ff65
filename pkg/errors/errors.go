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
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Plan errors, ordered by severity. Precondition failures abort
	// before any mutation; a required step failure aborts the rest of
	// the run; optional step failures are recorded and the run continues.
	ErrPrecondition ErrorCode = "PRECONDITION"
	ErrRequiredStep ErrorCode = "REQUIRED_STEP"
	ErrOptionalStep ErrorCode = "OPTIONAL_STEP"
	ErrAdvisory     ErrorCode = "ADVISORY"

	// External tool errors
	ErrPackageInstall ErrorCode = "PACKAGE_INSTALL"
	ErrGitClone       ErrorCode = "GIT_CLONE"
	ErrGitUpdate      ErrorCode = "GIT_UPDATE"
	ErrPatchApply     ErrorCode = "PATCH_APPLY"
	ErrBuildFailed    ErrorCode = "BUILD_FAILED"
	ErrCommandRun     ErrorCode = "COMMAND_RUN"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// RiceupError represents a structured error with code and details
type RiceupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RiceupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RiceupError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RiceupError) Is(target error) bool {
	var targetErr *RiceupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RiceupError with the given code and message
func New(code ErrorCode, message string) *RiceupError {
	return &RiceupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RiceupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RiceupError {
	return &RiceupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RiceupError
func Wrap(err error, code ErrorCode, message string) *RiceupError {
	if err == nil {
		return nil
	}
	return &RiceupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RiceupError {
	if err == nil {
		return nil
	}
	return &RiceupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RiceupError) WithDetail(key string, value interface{}) *RiceupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rerr *RiceupError
	if errors.As(err, &rerr) {
		return rerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RiceupError
func GetErrorCode(err error) ErrorCode {
	var rerr *RiceupError
	if errors.As(err, &rerr) {
		return rerr.Code
	}
	return ErrUnknown
}
