package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/formflow-io/formflow/internal/appspec"
)

var (
	// emailPattern is a conservative RFC 5322 subset: local@domain with a
	// dotted domain and no whitespace.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// telPattern allows digits, spaces, and common phone punctuation.
	telPattern = regexp.MustCompile(`^[0-9+\-() ]{7,20}$`)
)

// isoDateLayout is the ISO-8601 calendar date form accepted for date fields.
const isoDateLayout = "2006-01-02"

// ValidateField validates one submitted value against one field definition.
// The value originates from an untrusted client and may have any shape;
// dispatch is always by the field's declared type, never inferred from the
// value. A nil value means the field was absent from the payload.
//
// A nil return means the value passed.
func ValidateField(value any, def appspec.Field) *Error {
	if isBlank(value) {
		if def.Required {
			return &Error{
				Field:   def.ID,
				Message: fmt.Sprintf("%s is required", label(def)),
				Kind:    KindMissingRequiredField,
			}
		}
		// Absent optional fields always pass.
		return nil
	}

	switch def.Type {
	case appspec.FieldText, appspec.FieldTextarea:
		if _, ok := value.(string); !ok {
			return typeMismatch(def, "a string", value)
		}
		return nil

	case appspec.FieldEmail:
		s, ok := value.(string)
		if !ok || !emailPattern.MatchString(s) {
			return typeMismatch(def, "an email address", value)
		}
		return nil

	case appspec.FieldTel:
		s, ok := value.(string)
		if !ok || !telPattern.MatchString(s) {
			return typeMismatch(def, "a phone number (7-20 digits, spaces, +, -, parentheses)", value)
		}
		return nil

	case appspec.FieldDate:
		s, ok := value.(string)
		if !ok {
			return typeMismatch(def, "an ISO-8601 date (YYYY-MM-DD)", value)
		}
		if _, err := time.Parse(isoDateLayout, s); err != nil {
			return typeMismatch(def, "an ISO-8601 date (YYYY-MM-DD)", value)
		}
		return nil

	case appspec.FieldSelect, appspec.FieldRadio:
		s, ok := value.(string)
		if ok {
			for _, opt := range def.Options {
				if s == opt.Value {
					return nil
				}
			}
		}
		return &Error{
			Field:   def.ID,
			Message: fmt.Sprintf("%s must be one of: %s", label(def), optionValues(def)),
			Kind:    KindInvalidEnumValue,
		}

	case appspec.FieldCheckbox:
		switch v := value.(type) {
		case bool:
			return nil
		case string:
			if v == "true" || v == "false" {
				return nil
			}
		}
		return typeMismatch(def, "a boolean", value)

	default:
		// An unknown type is a configuration fault in the spec itself; the
		// schema gate catches this before submissions are processed, so this
		// branch only fires when a caller skipped the gate.
		return &Error{
			Field:   def.ID,
			Message: fmt.Sprintf("field %s has unknown type %q", def.ID, def.Type),
			Kind:    KindMalformedSpec,
		}
	}
}

// isBlank reports whether a submitted value counts as absent: missing, null,
// or an empty/whitespace-only string.
func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func typeMismatch(def appspec.Field, expected string, value any) *Error {
	return &Error{
		Field:   def.ID,
		Message: fmt.Sprintf("%s must be %s, got %s", label(def), expected, describeValue(value)),
		Kind:    KindTypeMismatch,
	}
}

func label(def appspec.Field) string {
	if def.Label != "" {
		return def.Label
	}
	return def.ID
}

func optionValues(def appspec.Field) string {
	values := make([]string, 0, len(def.Options))
	for _, opt := range def.Options {
		values = append(values, opt.Value)
	}
	return strings.Join(values, ", ")
}

// describeValue renders a short description of an untrusted value for error
// messages without echoing large payloads back to the client.
func describeValue(value any) string {
	switch v := value.(type) {
	case string:
		if len(v) > 40 {
			return fmt.Sprintf("%q...", v[:40])
		}
		return fmt.Sprintf("%q", v)
	case bool, float64, int:
		return fmt.Sprintf("%v", v)
	case []any:
		return "a list"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
