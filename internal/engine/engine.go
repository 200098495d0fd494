// Package engine ties the validators together behind one entry point. An
// Engine can only be built from a spec that passes the schema gate, so the
// data and transition validators never see a malformed spec.
package engine

import (
	"errors"
	"fmt"

	"github.com/formflow-io/formflow/internal/appspec"
	"github.com/formflow-io/formflow/internal/sanitize"
	"github.com/formflow-io/formflow/internal/submission"
	"github.com/formflow-io/formflow/internal/validation"
	"github.com/formflow-io/formflow/internal/workflow"
)

// ErrMalformedSpec marks a spec that failed the schema gate. This is an app
// configuration fault, distinct from end-user validation failures, and
// callers surface it as a misconfigured-app condition rather than a field
// error.
var ErrMalformedSpec = errors.New("app spec is malformed")

// SpecError carries the full gate diagnostics alongside ErrMalformedSpec.
type SpecError struct {
	Result *validation.Result
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("app spec is malformed: %s", e.Result.Summary())
}

func (e *SpecError) Unwrap() error {
	return ErrMalformedSpec
}

// Engine validates submissions and workflow transitions against one gated
// AppSpec. All methods are pure: safe for concurrent use, no input
// mutation, no I/O.
type Engine struct {
	spec *appspec.AppSpec
}

// New gates the spec and returns an engine bound to it. A spec that fails
// the gate yields a *SpecError wrapping ErrMalformedSpec.
func New(spec *appspec.AppSpec) (*Engine, error) {
	check := validation.CheckSpec(spec)
	if !check.Valid {
		return nil, &SpecError{Result: check}
	}
	return &Engine{spec: spec}, nil
}

// Spec returns the gated spec the engine is bound to.
func (e *Engine) Spec() *appspec.AppSpec {
	return e.spec
}

// ValidateSubmission validates a raw data record against every declared
// field, aggregating all failures in field-declaration order.
func (e *Engine) ValidateSubmission(data map[string]any) *validation.Result {
	return validation.ValidateSubmission(data, e.spec)
}

// ValidateSubmissionForRole validates only the fields on pages assigned to
// the submitting role.
func (e *Engine) ValidateSubmissionForRole(data map[string]any, role string) *validation.Result {
	return validation.ValidateSubmissionForRole(data, e.spec, role)
}

// Sanitize returns a sanitized deep copy of an accepted data record.
func (e *Engine) Sanitize(data map[string]any) map[string]any {
	return sanitize.Data(data)
}

// NewSubmission builds a submission record in the workflow's initial state.
func (e *Engine) NewSubmission(data map[string]any, submittedBy string) *submission.Submission {
	return submission.New(e.spec, data, submittedBy)
}

// ValidateTransition checks whether the actor may move the record to
// targetState, without applying the change.
func (e *Engine) ValidateTransition(record workflow.Record, targetState, actorRole, note string) *validation.Result {
	return workflow.ValidateTransition(record, targetState, e.spec, actorRole, note)
}

// AllowedTransitions lists the transitions the actor may take from the
// given state, for dry-run rendering of workflow actions.
func (e *Engine) AllowedTransitions(fromState, actorRole string) []appspec.Transition {
	return workflow.AllowedTransitions(e.spec, fromState, actorRole)
}

// TerminalStates lists the workflow's terminal states, derived from the
// transition table.
func (e *Engine) TerminalStates() []string {
	return workflow.TerminalStates(e.spec)
}
