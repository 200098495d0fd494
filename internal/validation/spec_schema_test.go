package validation

import (
	"strings"
	"testing"
)

// validSpecDoc builds a minimal structurally valid spec document. Tests
// mutate the copy to produce each violation.
func validSpecDoc() map[string]any {
	return map[string]any{
		"id":      "app-clinic",
		"version": "1.0.0",
		"meta": map[string]any{
			"name": "Clinic Intake",
			"slug": "clinic-intake",
		},
		"roles": []any{
			map[string]any{"id": "PATIENT", "authRequired": false},
			map[string]any{"id": "STAFF", "authRequired": true},
		},
		"pages": []any{
			map[string]any{
				"id": "intake", "route": "/", "role": "PATIENT", "type": "form",
				"fields": []any{
					map[string]any{"id": "fullName", "type": "text", "label": "Full name", "required": true},
					map[string]any{"id": "state", "type": "select", "required": true,
						"options": []any{
							map[string]any{"value": "CA"},
							map[string]any{"value": "NY"},
						}},
				},
			},
			map[string]any{
				"id": "detail", "route": "/staff/:id", "role": "STAFF", "type": "detail",
				"actions": []any{
					map[string]any{"id": "approve", "label": "Approve", "targetState": "APPROVED"},
				},
			},
		},
		"workflow": map[string]any{
			"states":       []any{"DRAFT", "SUBMITTED", "APPROVED"},
			"initialState": "DRAFT",
			"transitions": []any{
				map[string]any{"from": "DRAFT", "to": "SUBMITTED", "allowedRoles": []any{"PATIENT"}},
				map[string]any{"from": []any{"SUBMITTED"}, "to": "APPROVED", "allowedRoles": []any{"STAFF"}},
			},
		},
		"api":          map[string]any{},
		"analytics":    map[string]any{},
		"environments": map[string]any{},
	}
}

func TestCheckAppSpecValid(t *testing.T) {
	result := CheckAppSpec(validSpecDoc())
	if !result.Valid {
		t.Fatalf("expected valid, got: %s", result.Summary())
	}
	if !IsValidAppSpec(validSpecDoc()) {
		t.Error("IsValidAppSpec must agree with CheckAppSpec")
	}
}

func TestCheckAppSpecNonObjects(t *testing.T) {
	for _, candidate := range []any{nil, "spec", float64(7), []any{"a"}, true} {
		result := CheckAppSpec(candidate)
		if result.Valid {
			t.Errorf("%T should be rejected", candidate)
		}
		if IsValidAppSpec(candidate) {
			t.Errorf("IsValidAppSpec(%T) = true", candidate)
		}
	}
	if IsValidAppSpec(map[string]any{}) {
		t.Error("empty object should be rejected")
	}
}

func TestCheckAppSpecViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(doc map[string]any)
		wantMsg string
	}{
		{
			name:    "missing id",
			mutate:  func(d map[string]any) { delete(d, "id") },
			wantMsg: "id:",
		},
		{
			name:    "version not a string",
			mutate:  func(d map[string]any) { d["version"] = float64(1) },
			wantMsg: "version:",
		},
		{
			name:    "meta missing",
			mutate:  func(d map[string]any) { delete(d, "meta") },
			wantMsg: "meta:",
		},
		{
			name: "slug not url safe",
			mutate: func(d map[string]any) {
				d["meta"].(map[string]any)["slug"] = "Clinic Intake!"
			},
			wantMsg: "meta.slug",
		},
		{
			name:    "roles empty",
			mutate:  func(d map[string]any) { d["roles"] = []any{} },
			wantMsg: "roles:",
		},
		{
			name: "duplicate role id",
			mutate: func(d map[string]any) {
				d["roles"] = append(d["roles"].([]any), map[string]any{"id": "PATIENT"})
			},
			wantMsg: "duplicate role id",
		},
		{
			name:    "workflow missing",
			mutate:  func(d map[string]any) { delete(d, "workflow") },
			wantMsg: "workflow:",
		},
		{
			name: "states empty",
			mutate: func(d map[string]any) {
				d["workflow"].(map[string]any)["states"] = []any{}
			},
			wantMsg: "workflow.states",
		},
		{
			name: "duplicate state",
			mutate: func(d map[string]any) {
				wf := d["workflow"].(map[string]any)
				wf["states"] = append(wf["states"].([]any), "DRAFT")
			},
			wantMsg: "duplicate state",
		},
		{
			name: "initial state undeclared",
			mutate: func(d map[string]any) {
				d["workflow"].(map[string]any)["initialState"] = "LIMBO"
			},
			wantMsg: "initialState",
		},
		{
			name: "transition from undeclared",
			mutate: func(d map[string]any) {
				wf := d["workflow"].(map[string]any)
				wf["transitions"].([]any)[0].(map[string]any)["from"] = "LIMBO"
			},
			wantMsg: "transitions[0].from",
		},
		{
			name: "transition to undeclared",
			mutate: func(d map[string]any) {
				wf := d["workflow"].(map[string]any)
				wf["transitions"].([]any)[0].(map[string]any)["to"] = "LIMBO"
			},
			wantMsg: "transitions[0].to",
		},
		{
			name: "transition roles empty",
			mutate: func(d map[string]any) {
				wf := d["workflow"].(map[string]any)
				wf["transitions"].([]any)[0].(map[string]any)["allowedRoles"] = []any{}
			},
			wantMsg: "allowedRoles",
		},
		{
			name: "transition role undeclared",
			mutate: func(d map[string]any) {
				wf := d["workflow"].(map[string]any)
				wf["transitions"].([]any)[0].(map[string]any)["allowedRoles"] = []any{"ADMIN"}
			},
			wantMsg: "not a declared role",
		},
		{
			name: "page role undeclared",
			mutate: func(d map[string]any) {
				d["pages"].([]any)[0].(map[string]any)["role"] = "ADMIN"
			},
			wantMsg: "pages[0].role",
		},
		{
			name: "duplicate field id on one page",
			mutate: func(d map[string]any) {
				page := d["pages"].([]any)[0].(map[string]any)
				page["fields"] = append(page["fields"].([]any),
					map[string]any{"id": "fullName", "type": "text"})
			},
			wantMsg: "duplicate field id",
		},
		{
			name: "unknown field type",
			mutate: func(d map[string]any) {
				page := d["pages"].([]any)[0].(map[string]any)
				page["fields"].([]any)[0].(map[string]any)["type"] = "color"
			},
			wantMsg: "unknown field type",
		},
		{
			name: "select without options",
			mutate: func(d map[string]any) {
				page := d["pages"].([]any)[0].(map[string]any)
				delete(page["fields"].([]any)[1].(map[string]any), "options")
			},
			wantMsg: "options",
		},
		{
			name: "duplicate option value",
			mutate: func(d map[string]any) {
				page := d["pages"].([]any)[0].(map[string]any)
				field := page["fields"].([]any)[1].(map[string]any)
				field["options"] = append(field["options"].([]any), map[string]any{"value": "CA"})
			},
			wantMsg: "duplicate option value",
		},
		{
			name: "action target undeclared",
			mutate: func(d map[string]any) {
				page := d["pages"].([]any)[1].(map[string]any)
				page["actions"].([]any)[0].(map[string]any)["targetState"] = "LIMBO"
			},
			wantMsg: "targetState",
		},
		{
			name:    "api missing",
			mutate:  func(d map[string]any) { delete(d, "api") },
			wantMsg: "api:",
		},
		{
			name:    "environments not an object",
			mutate:  func(d map[string]any) { d["environments"] = "prod" },
			wantMsg: "environments:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validSpecDoc()
			tt.mutate(doc)

			result := CheckAppSpec(doc)
			if result.Valid {
				t.Fatal("expected the mutation to be caught")
			}
			for _, e := range result.Errors {
				if e.Kind != KindMalformedSpec {
					t.Errorf("spec failures must carry MalformedSpec, got %q", e.Kind)
				}
			}
			found := false
			for _, e := range result.Errors {
				if strings.Contains(e.Message, tt.wantMsg) {
					found = true
				}
			}
			if !found {
				t.Errorf("no error mentioning %q in: %s", tt.wantMsg, result.Summary())
			}
		})
	}
}

func TestCheckAppSpecReportsEveryViolation(t *testing.T) {
	doc := validSpecDoc()
	delete(doc, "id")
	delete(doc, "version")
	d := doc["meta"].(map[string]any)
	d["slug"] = "Not A Slug"

	result := CheckAppSpec(doc)
	if len(result.Errors) < 3 {
		t.Errorf("expected all violations in one pass, got: %s", result.Summary())
	}
}

func TestCheckAppSpecYAMLStyleMaps(t *testing.T) {
	// Documents decoded by older YAML libraries use interface keys.
	doc := validSpecDoc()
	doc["meta"] = map[any]any{"name": "Clinic Intake", "slug": "clinic-intake"}
	if !IsValidAppSpec(doc) {
		t.Error("interface-keyed maps should be accepted")
	}
}
