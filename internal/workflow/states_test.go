package workflow

import (
	"reflect"
	"testing"

	"github.com/formflow-io/formflow/internal/appspec"
)

func TestTerminalStates(t *testing.T) {
	got := TerminalStates(clinicSpec())
	want := []string{"APPROVED", "REJECTED"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTerminalStatesEmptyTable(t *testing.T) {
	spec := &appspec.AppSpec{
		Workflow: appspec.Workflow{States: []string{"A", "B"}},
	}
	got := TerminalStates(spec)
	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("with no transitions every state is terminal, got %v", got)
	}
}

func TestAllowedTransitions(t *testing.T) {
	spec := clinicSpec()

	staff := AllowedTransitions(spec, "SUBMITTED", "STAFF")
	if len(staff) != 3 {
		t.Fatalf("staff from SUBMITTED: got %d transitions", len(staff))
	}
	wantTargets := []string{"APPROVED", "NEEDS_INFO", "REJECTED"}
	for i, tr := range staff {
		if tr.To != wantTargets[i] {
			t.Errorf("transition %d: to %q, want %q", i, tr.To, wantTargets[i])
		}
	}

	patient := AllowedTransitions(spec, "SUBMITTED", "PATIENT")
	if len(patient) != 0 {
		t.Errorf("patient from SUBMITTED: got %v", patient)
	}

	if got := AllowedTransitions(spec, "APPROVED", "STAFF"); len(got) != 0 {
		t.Errorf("terminal states offer nothing, got %v", got)
	}
}

func TestReachableStates(t *testing.T) {
	spec := clinicSpec()
	got := ReachableStates(spec)
	want := []string{"DRAFT", "SUBMITTED", "NEEDS_INFO", "APPROVED", "REJECTED"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReachableStatesDeadState(t *testing.T) {
	spec := clinicSpec()
	spec.Workflow.States = append(spec.Workflow.States, "ARCHIVED")
	// No transition targets ARCHIVED.
	got := ReachableStates(spec)
	for _, s := range got {
		if s == "ARCHIVED" {
			t.Fatal("ARCHIVED has no inbound edge and must not be reachable")
		}
	}
	if len(got) != 5 {
		t.Errorf("got %v", got)
	}
}

func TestReachableStatesThroughMultiOrigin(t *testing.T) {
	// B is only reachable through an edge whose origin list also names an
	// unreachable state.
	spec := &appspec.AppSpec{
		Workflow: appspec.Workflow{
			States:       []string{"A", "B", "X"},
			InitialState: "A",
			Transitions: []appspec.Transition{
				{From: appspec.StateList{"X", "A"}, To: "B", AllowedRoles: []string{"R"}},
			},
		},
	}
	got := ReachableStates(spec)
	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("got %v", got)
	}
}

func TestRoleCoverage(t *testing.T) {
	spec := clinicSpec()
	spec.Roles = append(spec.Roles, appspec.Role{ID: "AUDITOR"})

	got := RoleCoverage(spec)
	want := map[string]int{"PATIENT": 2, "STAFF": 3, "AUDITOR": 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
