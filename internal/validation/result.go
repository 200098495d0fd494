// Package validation implements the specification-driven validators: the
// AppSpec schema gate, the per-field type validator, and the whole-submission
// validator. All outcomes are reported as data on a Result; the validators
// never panic on untrusted input.
package validation

import (
	"fmt"
	"strings"
)

// Kind classifies a validation failure. Kinds are a closed taxonomy shared
// with the workflow transition validator.
type Kind string

const (
	KindMissingRequiredField Kind = "MissingRequiredField"
	KindTypeMismatch         Kind = "TypeMismatch"
	KindInvalidEnumValue     Kind = "InvalidEnumValue"
	KindUnknownState         Kind = "UnknownState"
	KindTransitionNotAllowed Kind = "TransitionNotAllowed"
	KindRoleNotPermitted     Kind = "RoleNotPermitted"
	KindNoteRequired         Kind = "NoteRequired"
	KindMalformedSpec        Kind = "MalformedSpec"
)

// Error is a single validation failure with its location and classification.
type Error struct {
	Field   string // Field id the failure applies to; empty for spec/workflow level failures
	Message string // Human-readable description
	Kind    Kind   // Failure classification
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Field != "" {
		sb.WriteString(e.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Kind != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Kind))
	}
	return sb.String()
}

// Result is the complete outcome of one validation call. A fresh Result is
// produced per call and never mutated by the engine afterwards.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []*Error `json:"errors,omitempty"`
}

// NewResult returns a passing Result with no errors recorded.
func NewResult() *Result {
	return &Result{Valid: true}
}

// AddError records a failure and marks the result invalid.
func (r *Result) AddError(err *Error) {
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// HasErrors reports whether any failure was recorded.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorsOfKind returns the recorded failures matching kind.
func (r *Result) ErrorsOfKind(kind Kind) []*Error {
	var out []*Error
	for _, e := range r.Errors {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Summary formats the result as a one-line-per-error block suitable for CLI
// output or log lines.
func (r *Result) Summary() string {
	if r.Valid {
		return "valid"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation error(s):\n", len(r.Errors)))
	for _, e := range r.Errors {
		sb.WriteString(fmt.Sprintf("- %s\n", e.Error()))
	}
	return sb.String()
}
