package workflow

import (
	"github.com/formflow-io/formflow/internal/appspec"
)

// TerminalStates returns the states with no outgoing transition, in
// declaration order. Terminality is a property of the transition table, not
// an attribute of the state.
func TerminalStates(spec *appspec.AppSpec) []string {
	hasOutgoing := make(map[string]bool)
	for _, tr := range spec.Workflow.Transitions {
		for _, from := range tr.From {
			hasOutgoing[from] = true
		}
	}

	var terminal []string
	for _, s := range spec.Workflow.States {
		if !hasOutgoing[s] {
			terminal = append(terminal, s)
		}
	}
	return terminal
}

// AllowedTransitions returns the transitions an actor with the given role
// may take from the given state, in declaration order. Callers use this to
// decide which workflow actions to offer without committing to any of them.
func AllowedTransitions(spec *appspec.AppSpec, fromState, role string) []appspec.Transition {
	var allowed []appspec.Transition
	for _, tr := range spec.Workflow.Transitions {
		if tr.From.Contains(fromState) && roleAllowed(tr, role) {
			allowed = append(allowed, tr)
		}
	}
	return allowed
}

// ReachableStates returns every state reachable from the workflow's initial
// state through the transition table, including the initial state itself.
// States missing from the result are dead configuration.
func ReachableStates(spec *appspec.AppSpec) []string {
	reached := map[string]bool{spec.Workflow.InitialState: true}
	for changed := true; changed; {
		changed = false
		for _, tr := range spec.Workflow.Transitions {
			if reached[tr.To] {
				continue
			}
			for _, from := range tr.From {
				if reached[from] {
					reached[tr.To] = true
					changed = true
					break
				}
			}
		}
	}

	var out []string
	for _, s := range spec.Workflow.States {
		if reached[s] {
			out = append(out, s)
		}
	}
	return out
}

// RoleCoverage maps each declared role id to the number of transitions it
// may take. Roles mapped to zero can never act on the workflow, which
// usually indicates a misconfigured spec.
func RoleCoverage(spec *appspec.AppSpec) map[string]int {
	coverage := make(map[string]int, len(spec.Roles))
	for _, role := range spec.Roles {
		coverage[role.ID] = 0
	}
	for _, tr := range spec.Workflow.Transitions {
		for _, role := range tr.AllowedRoles {
			coverage[role]++
		}
	}
	return coverage
}
