// Package errors defines categorised CLI errors with remediation hints.
// Engine-level validation outcomes are data, not errors; this package only
// covers faults that stop a command.
package errors

import "strings"

// ErrorCategory groups CLI failures for exit-code mapping and display.
type ErrorCategory int

const (
	// Argument indicates invalid command-line arguments.
	Argument ErrorCategory = iota
	// Configuration indicates a broken config file or a malformed app spec.
	Configuration
	// Validation indicates submitted data or a transition failed validation.
	Validation
	// Runtime indicates an unexpected failure during execution.
	Runtime
)

// String returns the display title for the category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Validation:
		return "Validation Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is an error with a category and optional remediation steps shown
// to the user.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Remediation []string
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Format renders the error with its category title and remediation list.
func (e *CLIError) Format() string {
	var sb strings.Builder
	sb.WriteString(e.Category.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	for _, step := range e.Remediation {
		sb.WriteString("\n  → ")
		sb.WriteString(step)
	}
	return sb.String()
}

// NewArgumentError creates an Argument-category error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewConfigurationError creates a Configuration-category error.
func NewConfigurationError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewValidationError creates a Validation-category error.
func NewValidationError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Validation, Message: message, Remediation: remediation}
}

// NewRuntimeError creates a Runtime-category error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Runtime, Message: message, Remediation: remediation}
}
