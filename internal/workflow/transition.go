// Package workflow implements the role-gated finite-state machine governing
// submission status changes. The machine is the transition table declared in
// the AppSpec; nothing here is hardcoded per application, and terminality is
// derived from the table rather than declared.
package workflow

import (
	"fmt"
	"strings"

	"github.com/formflow-io/formflow/internal/appspec"
	"github.com/formflow-io/formflow/internal/validation"
)

// Record is the minimal view of a submission the transition validator
// needs. Validation never mutates the record; the caller applies the status
// change against its own store after a valid result.
type Record interface {
	CurrentStatus() string
}

// ValidateTransition checks whether moving record from its current status to
// targetState is legal for the given actor role. note is the actor-supplied
// note text; it is only consulted when the matched transition requires one,
// and is never stored here.
//
// The call is side-effect free, so it is safe to use as a dry-run check,
// e.g. to decide which action buttons to render.
func ValidateTransition(record Record, targetState string, spec *appspec.AppSpec, actorRole, note string) *validation.Result {
	result := validation.NewResult()

	if !spec.HasState(targetState) {
		result.AddError(&validation.Error{
			Message: fmt.Sprintf("unknown target state %q", targetState),
			Kind:    validation.KindUnknownState,
		})
		return result
	}

	current := record.CurrentStatus()
	match, found := findTransition(spec, current, targetState)
	if !found {
		result.AddError(&validation.Error{
			Message: fmt.Sprintf("no transition from %q to %q", current, targetState),
			Kind:    validation.KindTransitionNotAllowed,
		})
		return result
	}

	if !roleAllowed(match, actorRole) {
		result.AddError(&validation.Error{
			Message: fmt.Sprintf("role %q may not move %q to %q", actorRole, current, targetState),
			Kind:    validation.KindRoleNotPermitted,
		})
		return result
	}

	if match.RequiresNote && strings.TrimSpace(note) == "" {
		result.AddError(&validation.Error{
			Message: fmt.Sprintf("transition from %q to %q requires a note", current, targetState),
			Kind:    validation.KindNoteRequired,
		})
		return result
	}

	return result
}

// findTransition looks up the table entry whose from set contains the
// current state and whose to equals the target. The first declared match
// wins.
func findTransition(spec *appspec.AppSpec, from, to string) (appspec.Transition, bool) {
	for _, tr := range spec.Workflow.Transitions {
		if tr.To == to && tr.From.Contains(from) {
			return tr, true
		}
	}
	return appspec.Transition{}, false
}

func roleAllowed(tr appspec.Transition, role string) bool {
	for _, r := range tr.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}
