package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/formflow-io/formflow/internal/appspec"
	"github.com/formflow-io/formflow/internal/engine"
	apperrors "github.com/formflow-io/formflow/internal/errors"
	"github.com/formflow-io/formflow/internal/sanitize"
)

var (
	checkRoleFlag      string
	checkSanitizedFlag bool
)

var checkCmd = &cobra.Command{
	Use:   "check <spec-file> <data-file>",
	Short: "Validate a submission payload against an app spec",
	Long: `Validate a submission payload (JSON object mapping field ids to values)
against the fields an app spec declares.

All failures are reported at once, in field declaration order, so a form
can highlight every invalid field in one pass. Keys not declared in the
spec are ignored.

Exit Codes:
  0 - Payload is valid
  1 - Payload failed validation
  2 - Spec is misconfigured
  3 - Invalid arguments or unreadable files`,
	Example: `  formflow check specs/clinic.yaml payload.json
  formflow check specs/clinic.yaml payload.json --role PATIENT
  formflow check specs/clinic.yaml payload.json --sanitized`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), apperrors.NewConfigurationError(err.Error()).Format())
			return NewExitError(ExitInvalidArguments)
		}
		role := checkRoleFlag
		if role == "" {
			role = cfg.DefaultRole
		}
		return runCheck(args[0], args[1], role, cmd.OutOrStdout(),
			outputFormat(cmd, cfg), cfg.Color, checkSanitizedFlag, cfg.SanitizeDepth)
	},
}

// runCheck validates one payload file against one spec file.
func runCheck(specPath, dataPath, role string, w io.Writer, format string, colorize, showSanitized bool, sanitizeDepth int) error {
	eng, err := loadEngine(specPath, w)
	if err != nil {
		return err
	}

	payload, err := readPayload(dataPath)
	if err != nil {
		fmt.Fprintln(w, apperrors.NewArgumentError(err.Error(), "the data file must contain a JSON object").Format())
		return NewExitError(ExitInvalidArguments)
	}

	log.Debug().Str("spec", specPath).Str("role", role).Int("keys", len(payload)).Msg("checking submission")

	result := eng.ValidateSubmissionForRole(payload, role)
	if err := printResult(w, dataPath, result, format, colorize); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitValidationFailed)
	}

	if showSanitized {
		clean := sanitize.DataWithDepth(payload, sanitizeDepth)
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(clean); err != nil {
			return err
		}
	}
	return nil
}

// loadEngine loads a spec file and builds an engine from it, printing the
// gate diagnostics when the spec is misconfigured.
func loadEngine(specPath string, w io.Writer) (*engine.Engine, error) {
	spec, err := appspec.Load(specPath)
	if err != nil {
		fmt.Fprintln(w, apperrors.NewArgumentError(err.Error(), "check the spec path and syntax").Format())
		return nil, NewExitError(ExitInvalidArguments)
	}

	eng, err := engine.New(spec)
	if err != nil {
		var specErr *engine.SpecError
		if errors.As(err, &specErr) {
			fmt.Fprintln(w, apperrors.NewConfigurationError(
				fmt.Sprintf("%s is misconfigured:\n%s", specPath, specErr.Result.Summary()),
				"fix the spec before checking submissions, see: formflow validate").Format())
			return nil, NewExitError(ExitSpecMisconfigured)
		}
		return nil, err
	}
	return eng, nil
}

// readPayload reads a JSON object file into the generic map the validators
// accept.
func readPayload(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	return payload, nil
}

func init() {
	checkCmd.GroupID = GroupValidation
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkRoleFlag, "role", "r", "", "Validate only fields on pages assigned to this role")
	checkCmd.Flags().BoolVar(&checkSanitizedFlag, "sanitized", false, "Print the sanitized payload on success")
}
