// Package appspec defines the declarative application specification that
// drives form validation and workflow transitions: pages, fields, roles,
// and the workflow state machine.
package appspec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldType identifies the validation rules applied to a field's value.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
)

// KnownFieldTypes lists every field type the engine can validate.
var KnownFieldTypes = []FieldType{
	FieldText, FieldEmail, FieldTel, FieldDate,
	FieldTextarea, FieldSelect, FieldRadio, FieldCheckbox,
}

// IsKnownFieldType reports whether t is a member of the closed field-type set.
func IsKnownFieldType(t FieldType) bool {
	for _, k := range KnownFieldTypes {
		if t == k {
			return true
		}
	}
	return false
}

// AppSpec is the root configuration artifact for one application.
type AppSpec struct {
	ID           string         `json:"id" yaml:"id"`
	Version      string         `json:"version" yaml:"version"`
	Meta         Meta           `json:"meta" yaml:"meta"`
	Roles        []Role         `json:"roles" yaml:"roles"`
	Pages        []Page         `json:"pages" yaml:"pages"`
	Workflow     Workflow       `json:"workflow" yaml:"workflow"`
	API          map[string]any `json:"api" yaml:"api"`
	Analytics    map[string]any `json:"analytics" yaml:"analytics"`
	Environments map[string]any `json:"environments" yaml:"environments"`
}

// Meta identifies the application.
type Meta struct {
	Name         string `json:"name" yaml:"name"`
	Slug         string `json:"slug" yaml:"slug"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`
}

// Role declares an actor role known to the application.
type Role struct {
	ID           string `json:"id" yaml:"id"`
	AuthRequired bool   `json:"authRequired" yaml:"authRequired"`
	RoutePrefix  string `json:"routePrefix,omitempty" yaml:"routePrefix,omitempty"`
}

// Page is one screen in the application, optionally carrying form fields
// and workflow actions.
type Page struct {
	ID      string   `json:"id" yaml:"id"`
	Route   string   `json:"route" yaml:"route"`
	Role    string   `json:"role" yaml:"role"`
	Type    string   `json:"type" yaml:"type"`
	Fields  []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Actions []Action `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// Field declares one input with its type-specific validation rules.
type Field struct {
	ID       string    `json:"id" yaml:"id"`
	Type     FieldType `json:"type" yaml:"type"`
	Label    string    `json:"label" yaml:"label"`
	Required bool      `json:"required" yaml:"required"`
	Options  []Option  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Option is one selectable value of a select or radio field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Action is a workflow operation offered on a detail page.
type Action struct {
	ID           string `json:"id" yaml:"id"`
	Label        string `json:"label" yaml:"label"`
	TargetState  string `json:"targetState" yaml:"targetState"`
	RequiresNote bool   `json:"requiresNote,omitempty" yaml:"requiresNote,omitempty"`
	Variant      string `json:"variant,omitempty" yaml:"variant,omitempty"`
}

// Workflow is the finite-state machine governing submission lifecycles.
type Workflow struct {
	States       []string     `json:"states" yaml:"states"`
	InitialState string       `json:"initialState" yaml:"initialState"`
	Transitions  []Transition `json:"transitions" yaml:"transitions"`
}

// Transition is one edge of the workflow, gated by role and optionally
// requiring a note from the actor.
type Transition struct {
	From         StateList `json:"from" yaml:"from"`
	To           string    `json:"to" yaml:"to"`
	AllowedRoles []string  `json:"allowedRoles" yaml:"allowedRoles"`
	RequiresNote bool      `json:"requiresNote,omitempty" yaml:"requiresNote,omitempty"`
}

// StateList is a transition origin: a single state or a set of states.
// It unmarshals from either a scalar or a sequence.
type StateList []string

// Contains reports whether state is a member of the list.
func (s StateList) Contains(state string) bool {
	for _, v := range s {
		if v == state {
			return true
		}
	}
	return false
}

// UnmarshalYAML accepts both `from: DRAFT` and `from: [DRAFT, NEEDS_INFO]`.
func (s *StateList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*s = StateList{single}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*s = StateList(many)
		return nil
	default:
		return fmt.Errorf("from: expected string or list of strings")
	}
}

// UnmarshalJSON accepts both a string and an array of strings.
func (s *StateList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*s = StateList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("from: expected string or list of strings")
	}
	*s = StateList(many)
	return nil
}

// MarshalJSON writes a single-element list back as a scalar so round-tripped
// specs stay byte-stable.
func (s StateList) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

// FieldsInOrder returns every field declared across the spec's pages, in
// page order then declaration order. When the same field id appears on more
// than one page the first declaration wins.
func (a *AppSpec) FieldsInOrder() []Field {
	return a.fieldsForPages(nil)
}

// FieldsForRole returns the fields of pages assigned to the given role, in
// declaration order. An empty role matches every page.
func (a *AppSpec) FieldsForRole(role string) []Field {
	if role == "" {
		return a.FieldsInOrder()
	}
	return a.fieldsForPages(func(p Page) bool { return p.Role == role })
}

func (a *AppSpec) fieldsForPages(match func(Page) bool) []Field {
	var fields []Field
	seen := make(map[string]bool)
	for _, page := range a.Pages {
		if match != nil && !match(page) {
			continue
		}
		for _, f := range page.Fields {
			if seen[f.ID] {
				continue
			}
			seen[f.ID] = true
			fields = append(fields, f)
		}
	}
	return fields
}

// FindRole returns the declared role with the given id.
func (a *AppSpec) FindRole(id string) (Role, bool) {
	for _, r := range a.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// HasState reports whether state is declared in the workflow.
func (a *AppSpec) HasState(state string) bool {
	for _, s := range a.Workflow.States {
		if s == state {
			return true
		}
	}
	return false
}
