// Package errors provides structured error types for clickwheel.
// Each error carries a code, a short message, and a suggestion that the TUI
// and CLI can show to the user.
package errors

import (
	"fmt"
	"strings"
)

// AppError represents a structured application error with additional context.
// It implements the error interface and supports error wrapping and comparison.
type AppError struct {
	// Code is a unique identifier for the error type (e.g., "CFG_001")
	Code string

	// Message is a brief description of the error
	Message string

	// Suggestion provides actionable guidance for the user
	Suggestion string

	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface and returns a formatted error message.
func (e *AppError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Code != "" {
		sb.WriteString(" (code: ")
		sb.WriteString(e.Code)
		sb.WriteString(")")
	}

	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches by code when both errors carry one, otherwise by message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if e.Code != "" && t.Code != "" {
		return e.Code == t.Code
	}
	return e.Message == t.Message
}

// FormatForTUI returns a formatted string suitable for display in the TUI.
func (e *AppError) FormatForTUI() string {
	var sb strings.Builder

	sb.WriteString("⚠ ")
	sb.WriteString(e.Message)
	sb.WriteString("\n\n")

	if e.Suggestion != "" {
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n\n")
	}

	if e.Code != "" {
		sb.WriteString("Error Code: ")
		sb.WriteString(e.Code)
	}

	return sb.String()
}

// --- Sentinel Errors ---

var (
	// ErrConfigInvalid indicates a configuration validation error.
	ErrConfigInvalid = &AppError{
		Code:       "CFG_001",
		Message:    "Configuration is invalid",
		Suggestion: "Check your configuration file for errors, or run 'clickwheel config restore' to go back to the last saved copy.",
	}

	// ErrUnsupportedFormat indicates an export/import file with an unknown extension.
	ErrUnsupportedFormat = &AppError{
		Code:       "CFG_002",
		Message:    "Unsupported file format",
		Suggestion: "Use a file ending in .json, .yaml or .yml.",
	}

	// ErrNoBackup indicates that there is no configuration backup to restore.
	ErrNoBackup = &AppError{
		Code:       "CFG_003",
		Message:    "No backup file found",
		Suggestion: "A backup is written the first time settings are saved over an existing config.",
	}

	// ErrUnknownTheme indicates a device theme outside the supported set.
	ErrUnknownTheme = &AppError{
		Code:       "SET_001",
		Message:    "Unknown device theme",
		Suggestion: "Choose one of: silver, black, u2.",
	}

	// ErrUnknownSide indicates a device side outside the supported set.
	ErrUnknownSide = &AppError{
		Code:       "SET_002",
		Message:    "Unknown device side",
		Suggestion: "Choose one of: front, back.",
	}

	// ErrUnknownService indicates a streaming service that clickwheel does not know.
	ErrUnknownService = &AppError{
		Code:       "AUTH_001",
		Message:    "Unknown streaming service",
		Suggestion: "Choose one of: apple, spotify.",
	}

	// ErrNotAuthorized indicates an operation that needs a signed-in service.
	ErrNotAuthorized = &AppError{
		Code:       "AUTH_002",
		Message:    "Service is not signed in",
		Suggestion: "Sign in first with 'clickwheel signin <service>' or from the Settings screen.",
	}
)

// --- Constructor Functions ---

// NewConfigInvalidError creates a new ErrConfigInvalid error with validation details.
func NewConfigInvalidError(details string, cause error) *AppError {
	return &AppError{
		Code:       ErrConfigInvalid.Code,
		Message:    fmt.Sprintf("Configuration is invalid: %s", details),
		Suggestion: ErrConfigInvalid.Suggestion,
		Cause:      cause,
	}
}

// NewUnsupportedFormatError creates a new ErrUnsupportedFormat error for the given extension.
func NewUnsupportedFormatError(ext string) *AppError {
	return &AppError{
		Code:       ErrUnsupportedFormat.Code,
		Message:    fmt.Sprintf("Unsupported file format: %q", ext),
		Suggestion: ErrUnsupportedFormat.Suggestion,
	}
}

// NewUnknownThemeError creates a new ErrUnknownTheme error for the rejected value.
func NewUnknownThemeError(value string) *AppError {
	return &AppError{
		Code:       ErrUnknownTheme.Code,
		Message:    fmt.Sprintf("Unknown device theme %q", value),
		Suggestion: ErrUnknownTheme.Suggestion,
	}
}

// NewUnknownSideError creates a new ErrUnknownSide error for the rejected value.
func NewUnknownSideError(value string) *AppError {
	return &AppError{
		Code:       ErrUnknownSide.Code,
		Message:    fmt.Sprintf("Unknown device side %q", value),
		Suggestion: ErrUnknownSide.Suggestion,
	}
}

// NewUnknownServiceError creates a new ErrUnknownService error for the rejected value.
func NewUnknownServiceError(value string) *AppError {
	return &AppError{
		Code:       ErrUnknownService.Code,
		Message:    fmt.Sprintf("Unknown streaming service %q", value),
		Suggestion: ErrUnknownService.Suggestion,
	}
}

// NewNotAuthorizedError creates a new ErrNotAuthorized error for a service.
func NewNotAuthorizedError(service string) *AppError {
	return &AppError{
		Code:       ErrNotAuthorized.Code,
		Message:    fmt.Sprintf("%s is not signed in", service),
		Suggestion: ErrNotAuthorized.Suggestion,
	}
}

// --- Helper Functions ---

// IsAppError checks if an error is an AppError type.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError returns err as an *AppError, or nil.
func GetAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// Wrap wraps an existing error with additional context.
// An AppError keeps its code; anything else becomes GEN_001.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:       appErr.Code,
			Message:    message + ": " + appErr.Message,
			Suggestion: appErr.Suggestion,
			Cause:      appErr.Cause,
		}
	}

	return &AppError{
		Code:       "GEN_001",
		Message:    message,
		Suggestion: "Check the error details and try again.",
		Cause:      err,
	}
}

// FormatErrorForTUI formats any error for display in the TUI.
func FormatErrorForTUI(err error) string {
	if err == nil {
		return ""
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr.FormatForTUI()
	}

	return fmt.Sprintf("⚠ %s\n\nAn unexpected error occurred. Check the log file for more details.", err.Error())
}
