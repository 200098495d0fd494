package validation

import (
	"fmt"
	"regexp"

	"github.com/formflow-io/formflow/internal/appspec"
)

// slugPattern matches URL-safe slugs: lowercase alphanumerics separated by
// single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsValidAppSpec reports whether candidate is a structurally valid AppSpec
// document. It accepts arbitrary untrusted input and never panics: nil,
// non-object values, and empty objects are simply invalid. A spec rejected
// here must never be handed to the submission or transition validators.
func IsValidAppSpec(candidate any) bool {
	return CheckAppSpec(candidate).Valid
}

// CheckAppSpec performs the same structural verification as IsValidAppSpec
// but reports every violation found, so spec authors see the full list in
// one pass. All errors carry kind MalformedSpec: a broken spec is a
// configuration fault, not an end-user validation failure.
func CheckAppSpec(candidate any) *Result {
	result := NewResult()

	root, ok := candidate.(map[string]any)
	if !ok || root == nil {
		result.AddError(&Error{Message: "app spec must be a JSON object", Kind: KindMalformedSpec})
		return result
	}

	checkSpecString(root, "id", result)
	checkSpecString(root, "version", result)
	checkSpecMeta(root, result)
	roleIDs := checkSpecRoles(root, result)
	states := checkSpecWorkflow(root, roleIDs, result)
	checkSpecPages(root, roleIDs, states, result)

	for _, key := range []string{"api", "analytics", "environments"} {
		if _, ok := asObject(root[key]); !ok {
			result.AddError(specErr("%s: missing or not an object", key))
		}
	}

	return result
}

func checkSpecString(root map[string]any, key string, result *Result) string {
	s, ok := asNonEmptyString(root[key])
	if !ok {
		result.AddError(specErr("%s: missing or not a non-empty string", key))
		return ""
	}
	return s
}

func checkSpecMeta(root map[string]any, result *Result) {
	meta, ok := asObject(root["meta"])
	if !ok {
		result.AddError(specErr("meta: missing or not an object"))
		return
	}
	if _, ok := asNonEmptyString(meta["name"]); !ok {
		result.AddError(specErr("meta.name: missing or not a non-empty string"))
	}
	slug, ok := asNonEmptyString(meta["slug"])
	if !ok {
		result.AddError(specErr("meta.slug: missing or not a non-empty string"))
	} else if !slugPattern.MatchString(slug) {
		result.AddError(specErr("meta.slug: %q is not a URL-safe slug", slug))
	}
}

func checkSpecRoles(root map[string]any, result *Result) map[string]bool {
	roleIDs := make(map[string]bool)

	roles, ok := asSlice(root["roles"])
	if !ok || len(roles) == 0 {
		result.AddError(specErr("roles: missing or empty"))
		return roleIDs
	}

	for i, raw := range roles {
		role, ok := asObject(raw)
		if !ok {
			result.AddError(specErr("roles[%d]: not an object", i))
			continue
		}
		id, ok := asNonEmptyString(role["id"])
		if !ok {
			result.AddError(specErr("roles[%d].id: missing or not a non-empty string", i))
			continue
		}
		if roleIDs[id] {
			result.AddError(specErr("roles[%d].id: duplicate role id %q", i, id))
			continue
		}
		roleIDs[id] = true
	}

	return roleIDs
}

func checkSpecWorkflow(root map[string]any, roleIDs map[string]bool, result *Result) map[string]bool {
	states := make(map[string]bool)

	wf, ok := asObject(root["workflow"])
	if !ok {
		result.AddError(specErr("workflow: missing or not an object"))
		return states
	}

	rawStates, ok := asSlice(wf["states"])
	if !ok || len(rawStates) == 0 {
		result.AddError(specErr("workflow.states: missing or empty"))
	}
	for i, raw := range rawStates {
		s, ok := asNonEmptyString(raw)
		if !ok {
			result.AddError(specErr("workflow.states[%d]: not a non-empty string", i))
			continue
		}
		if states[s] {
			result.AddError(specErr("workflow.states[%d]: duplicate state %q", i, s))
			continue
		}
		states[s] = true
	}

	initial, ok := asNonEmptyString(wf["initialState"])
	if !ok {
		result.AddError(specErr("workflow.initialState: missing or not a non-empty string"))
	} else if len(states) > 0 && !states[initial] {
		result.AddError(specErr("workflow.initialState: %q is not a declared state", initial))
	}

	transitions, _ := asSlice(wf["transitions"])
	for i, raw := range transitions {
		tr, ok := asObject(raw)
		if !ok {
			result.AddError(specErr("workflow.transitions[%d]: not an object", i))
			continue
		}
		for _, from := range stateListValues(tr["from"]) {
			if !states[from] {
				result.AddError(specErr("workflow.transitions[%d].from: %q is not a declared state", i, from))
			}
		}
		if len(stateListValues(tr["from"])) == 0 {
			result.AddError(specErr("workflow.transitions[%d].from: missing or empty", i))
		}
		to, ok := asNonEmptyString(tr["to"])
		if !ok {
			result.AddError(specErr("workflow.transitions[%d].to: missing or not a non-empty string", i))
		} else if !states[to] {
			result.AddError(specErr("workflow.transitions[%d].to: %q is not a declared state", i, to))
		}
		allowed, ok := asSlice(tr["allowedRoles"])
		if !ok || len(allowed) == 0 {
			result.AddError(specErr("workflow.transitions[%d].allowedRoles: missing or empty", i))
			continue
		}
		for j, rawRole := range allowed {
			role, ok := asNonEmptyString(rawRole)
			if !ok {
				result.AddError(specErr("workflow.transitions[%d].allowedRoles[%d]: not a non-empty string", i, j))
				continue
			}
			if !roleIDs[role] {
				result.AddError(specErr("workflow.transitions[%d].allowedRoles[%d]: %q is not a declared role", i, j, role))
			}
		}
	}

	return states
}

func checkSpecPages(root map[string]any, roleIDs, states map[string]bool, result *Result) {
	pages, ok := asSlice(root["pages"])
	if !ok {
		result.AddError(specErr("pages: missing or not a list"))
		return
	}

	for i, raw := range pages {
		page, ok := asObject(raw)
		if !ok {
			result.AddError(specErr("pages[%d]: not an object", i))
			continue
		}
		if _, ok := asNonEmptyString(page["id"]); !ok {
			result.AddError(specErr("pages[%d].id: missing or not a non-empty string", i))
		}
		role, ok := asNonEmptyString(page["role"])
		if !ok {
			result.AddError(specErr("pages[%d].role: missing or not a non-empty string", i))
		} else if !roleIDs[role] {
			result.AddError(specErr("pages[%d].role: %q is not a declared role", i, role))
		}
		checkSpecFields(page, i, result)
		checkSpecActions(page, i, states, result)
	}
}

func checkSpecFields(page map[string]any, pageIdx int, result *Result) {
	fields, _ := asSlice(page["fields"])
	seen := make(map[string]bool)

	for j, raw := range fields {
		field, ok := asObject(raw)
		if !ok {
			result.AddError(specErr("pages[%d].fields[%d]: not an object", pageIdx, j))
			continue
		}
		id, ok := asNonEmptyString(field["id"])
		if !ok {
			result.AddError(specErr("pages[%d].fields[%d].id: missing or not a non-empty string", pageIdx, j))
		} else if seen[id] {
			result.AddError(specErr("pages[%d].fields[%d].id: duplicate field id %q", pageIdx, j, id))
		} else {
			seen[id] = true
		}

		typ, ok := asNonEmptyString(field["type"])
		if !ok {
			result.AddError(specErr("pages[%d].fields[%d].type: missing or not a non-empty string", pageIdx, j))
			continue
		}
		if !appspec.IsKnownFieldType(appspec.FieldType(typ)) {
			result.AddError(specErr("pages[%d].fields[%d].type: unknown field type %q", pageIdx, j, typ))
			continue
		}

		if typ == string(appspec.FieldSelect) || typ == string(appspec.FieldRadio) {
			checkSpecOptions(field, pageIdx, j, result)
		}
	}
}

func checkSpecOptions(field map[string]any, pageIdx, fieldIdx int, result *Result) {
	options, ok := asSlice(field["options"])
	if !ok || len(options) == 0 {
		result.AddError(specErr("pages[%d].fields[%d].options: select/radio fields require non-empty options", pageIdx, fieldIdx))
		return
	}
	values := make(map[string]bool)
	for k, raw := range options {
		opt, ok := asObject(raw)
		if !ok {
			result.AddError(specErr("pages[%d].fields[%d].options[%d]: not an object", pageIdx, fieldIdx, k))
			continue
		}
		value, ok := asNonEmptyString(opt["value"])
		if !ok {
			result.AddError(specErr("pages[%d].fields[%d].options[%d].value: missing or not a non-empty string", pageIdx, fieldIdx, k))
			continue
		}
		if values[value] {
			result.AddError(specErr("pages[%d].fields[%d].options[%d].value: duplicate option value %q", pageIdx, fieldIdx, k, value))
			continue
		}
		values[value] = true
	}
}

func checkSpecActions(page map[string]any, pageIdx int, states map[string]bool, result *Result) {
	actions, _ := asSlice(page["actions"])
	for j, raw := range actions {
		action, ok := asObject(raw)
		if !ok {
			result.AddError(specErr("pages[%d].actions[%d]: not an object", pageIdx, j))
			continue
		}
		target, ok := asNonEmptyString(action["targetState"])
		if !ok {
			result.AddError(specErr("pages[%d].actions[%d].targetState: missing or not a non-empty string", pageIdx, j))
			continue
		}
		if !states[target] {
			result.AddError(specErr("pages[%d].actions[%d].targetState: %q is not a declared state", pageIdx, j, target))
		}
	}
}

func specErr(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Kind: KindMalformedSpec}
}

// asObject widens both map key conventions produced by encoding/json and
// yaml.v3 document decoding.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func asNonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// stateListValues reads a transition origin that may be a scalar state or a
// list of states. Non-string members are dropped; the caller reports the
// empty case.
func stateListValues(v any) []string {
	if s, ok := asNonEmptyString(v); ok {
		return []string{s}
	}
	raw, ok := asSlice(v)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := asNonEmptyString(item); ok {
			out = append(out, s)
		}
	}
	return out
}
