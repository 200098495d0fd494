package validation

import (
	"encoding/json"

	"github.com/formflow-io/formflow/internal/appspec"
)

// CheckSpec verifies an already-decoded AppSpec against the same structural
// rules as CheckAppSpec. The typed spec is round-tripped through its JSON
// form so the typed and untyped gates can never disagree.
func CheckSpec(spec *appspec.AppSpec) *Result {
	if spec == nil {
		result := NewResult()
		result.AddError(&Error{Message: "app spec is nil", Kind: KindMalformedSpec})
		return result
	}

	data, err := json.Marshal(spec)
	if err != nil {
		result := NewResult()
		result.AddError(specErr("app spec not serializable: %v", err))
		return result
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		result := NewResult()
		result.AddError(specErr("app spec not serializable: %v", err))
		return result
	}

	return CheckAppSpec(doc)
}
