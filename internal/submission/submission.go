// Package submission defines the data record produced by an end user
// against one AppSpec, plus the store collaborator contract through which
// callers persist it. The engine itself never writes a submission; status
// changes are applied by the caller after the transition validator accepts
// them.
package submission

import (
	"time"

	"github.com/google/uuid"

	"github.com/formflow-io/formflow/internal/appspec"
)

// Submission is one user-provided data record, exclusively owned by the
// AppSpec identified by AppID.
type Submission struct {
	ID          string         `json:"id"`
	AppID       string         `json:"appId"`
	Data        map[string]any `json:"data"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	SubmittedBy string         `json:"submittedBy,omitempty"`
}

// CurrentStatus implements workflow.Record.
func (s *Submission) CurrentStatus() string {
	return s.Status
}

// New creates a submission in the spec workflow's initial state. The data
// map is stored as given; callers validate and sanitize it first.
func New(spec *appspec.AppSpec, data map[string]any, submittedBy string) *Submission {
	now := time.Now().UTC()
	return &Submission{
		ID:          uuid.NewString(),
		AppID:       spec.ID,
		Data:        data,
		Status:      spec.Workflow.InitialState,
		CreatedAt:   now,
		UpdatedAt:   now,
		SubmittedBy: submittedBy,
	}
}

// WithStatus returns a copy of the submission moved to status with a fresh
// UpdatedAt. The receiver is not modified; callers persist the copy.
func (s *Submission) WithStatus(status string) *Submission {
	out := *s
	out.Status = status
	out.UpdatedAt = time.Now().UTC()
	return &out
}
