package cli

import "errors"

// Exit codes for the formflow CLI. These support programmatic composition
// and CI integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitValidationFailed indicates the payload or transition failed
	// validation.
	ExitValidationFailed = 1

	// ExitSpecMisconfigured indicates the app spec itself failed the schema
	// gate. Distinct from ExitValidationFailed so CI can tell a broken spec
	// from bad test data.
	ExitSpecMisconfigured = 2

	// ExitInvalidArguments indicates invalid command arguments or unreadable
	// input files.
	ExitInvalidArguments = 3
)

// exitError carries an exit code through RunE without extra output; the
// command has already printed its diagnostics.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

// NewExitError creates an error carrying the given exit code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode extracts the exit code from an error returned by Execute. Plain
// errors map to ExitInvalidArguments.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitInvalidArguments
}
