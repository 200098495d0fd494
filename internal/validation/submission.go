package validation

import (
	"github.com/formflow-io/formflow/internal/appspec"
)

// ValidateSubmission validates a full data record against every field the
// spec declares, in page order then declaration order. It does not
// short-circuit: the caller receives the complete failure list so a form UI
// can highlight every invalid field in one round trip.
//
// Keys present in data but not declared in the spec are ignored; unknown
// keys are not an error and survive through to sanitization.
//
// The spec must already have passed the schema gate. Validating against an
// ungated spec is a caller fault, not a condition this function recovers
// from.
func ValidateSubmission(data map[string]any, spec *appspec.AppSpec) *Result {
	return validateFields(data, spec.FieldsInOrder())
}

// ValidateSubmissionForRole validates only the fields on pages assigned to
// the submitting role. An empty role validates against every page.
func ValidateSubmissionForRole(data map[string]any, spec *appspec.AppSpec, role string) *Result {
	return validateFields(data, spec.FieldsForRole(role))
}

func validateFields(data map[string]any, fields []appspec.Field) *Result {
	result := NewResult()
	for _, def := range fields {
		// A missing key and an explicit null are both absent.
		if err := ValidateField(data[def.ID], def); err != nil {
			result.AddError(err)
		}
	}
	return result
}
