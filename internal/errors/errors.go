// Package errors defines the stable error codes and the coded error type used
// across the rename pipeline.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates the configuration failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// MissingCredentials indicates a required credential is absent at startup
	MissingCredentials ErrorCode = "MISSING_CREDENTIALS"
	// InvalidDiff indicates the diff text could not be parsed
	InvalidDiff ErrorCode = "INVALID_DIFF"
	// UnsupportedLanguage indicates a file extension outside the language table
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// SymbolNotFound indicates the named symbol does not occur in the file
	SymbolNotFound ErrorCode = "SYMBOL_NOT_FOUND"
	// SuggestionInvalid indicates a suggestion payload failed validation
	SuggestionInvalid ErrorCode = "SUGGESTION_INVALID"
	// ProviderUnavailable indicates the suggestion service could not be reached
	ProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	// RateLimited indicates the suggestion service refused the request for now
	RateLimited ErrorCode = "RATE_LIMITED"
	// Timeout indicates an external call exceeded its deadline
	Timeout ErrorCode = "TIMEOUT"
	// BackupFailed indicates the pre-rename backup copy could not be written
	BackupFailed ErrorCode = "BACKUP_FAILED"
	// RenameFailed indicates the backend could not complete the rename
	RenameFailed ErrorCode = "RENAME_FAILED"
	// VerificationFailed indicates the post-rename check rejected the file
	VerificationFailed ErrorCode = "VERIFICATION_FAILED"
	// RollbackFailed indicates the emergency restore itself failed
	RollbackFailed ErrorCode = "ROLLBACK_FAILED"
	// BackendUnavailable indicates no rename backend could serve the language
	BackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	// HistoryUnavailable indicates the rename journal could not be opened
	HistoryUnavailable ErrorCode = "HISTORY_UNAVAILABLE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Class groups error codes by how callers must react to them.
type Class int

const (
	// ClassTransient errors may succeed on retry or after capability fallback.
	ClassTransient Class = iota
	// ClassValidation errors convert to "no suggestion" and are not retried.
	ClassValidation
	// ClassTransactional errors resolve to a definite failed RenameOutcome.
	ClassTransactional
	// ClassFatal errors abort startup before any pipeline work.
	ClassFatal
	// ClassInternal covers everything else.
	ClassInternal
)

var classByCode = map[ErrorCode]Class{
	ProviderUnavailable: ClassTransient,
	RateLimited:         ClassTransient,
	Timeout:             ClassTransient,
	SuggestionInvalid:   ClassValidation,
	BackupFailed:        ClassTransactional,
	RenameFailed:        ClassTransactional,
	VerificationFailed:  ClassTransactional,
	RollbackFailed:      ClassTransactional,
	ConfigInvalid:       ClassFatal,
	MissingCredentials:  ClassFatal,
}

// ClassOf returns the handling class for a code.
func ClassOf(code ErrorCode) Class {
	if c, ok := classByCode[code]; ok {
		return c
	}
	return ClassInternal
}

// NamefixError represents a pipeline error with code, message, and cause chain
type NamefixError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new NamefixError
func New(code ErrorCode, message string, cause error) *NamefixError {
	return &NamefixError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *NamefixError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *NamefixError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *NamefixError) WithDetails(details interface{}) *NamefixError {
	e.Details = details
	return e
}

// CodeOf extracts the error code from an error chain, or InternalError when
// no NamefixError is present.
func CodeOf(err error) ErrorCode {
	var ne *NamefixError
	if errors.As(err, &ne) {
		return ne.Code
	}
	return InternalError
}

// IsTransient reports whether the error is worth retrying.
func IsTransient(err error) bool {
	return ClassOf(CodeOf(err)) == ClassTransient
}

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// SetEnv suggests exporting an environment variable
	SetEnv FixActionType = "set-env"
	// InstallTool suggests installing a tool
	InstallTool FixActionType = "install-tool"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	Tool        string        `json:"tool,omitempty"`
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	MissingCredentials: {
		{
			Type:        SetEnv,
			Command:     "export GEMINI_API_KEY=<your key>",
			Safe:        true,
			Description: "Provide the suggestion service credential",
		},
	},
	BackendUnavailable: {
		{
			Type:        RunCommand,
			Command:     "namefix doctor",
			Safe:        true,
			Description: "Check language tier and tool availability",
		},
	},
	RateLimited: {
		{
			Type:        RunCommand,
			Command:     "sleep 2 && namefix ${retry_command}",
			Safe:        true,
			Description: "Retry after brief delay",
		},
	},
	VerificationFailed: {
		{
			Type:        RunCommand,
			Command:     "namefix doctor",
			Safe:        true,
			Description: "Check which syntax checker verified the file",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
