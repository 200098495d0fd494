package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	apperrors "github.com/formflow-io/formflow/internal/errors"
	"github.com/formflow-io/formflow/internal/submission"
)

var (
	transitionFromFlag string
	transitionToFlag   string
	transitionRoleFlag string
	transitionNoteFlag string
)

var transitionCmd = &cobra.Command{
	Use:   "transition <spec-file>",
	Short: "Dry-run a workflow transition",
	Long: `Check whether a workflow transition is legal without applying it.

The check answers, in order: is the target a declared state, does a
transition exist from the current status, is the acting role permitted,
and is a note supplied when the transition requires one.

Exit Codes:
  0 - Transition is allowed
  1 - Transition was rejected
  2 - Spec is misconfigured
  3 - Invalid arguments`,
	Example: `  formflow transition specs/clinic.yaml --from DRAFT --to SUBMITTED --role PATIENT
  formflow transition specs/clinic.yaml --from SUBMITTED --to NEEDS_INFO --role STAFF --note "missing insurance id"`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), apperrors.NewConfigurationError(err.Error()).Format())
			return NewExitError(ExitInvalidArguments)
		}
		return runTransition(args[0], transitionFromFlag, transitionToFlag,
			transitionRoleFlag, transitionNoteFlag,
			cmd.OutOrStdout(), outputFormat(cmd, cfg), cfg.Color)
	},
}

// runTransition dry-runs one transition against a spec file.
func runTransition(specPath, from, to, role, note string, w io.Writer, format string, colorize bool) error {
	eng, err := loadEngine(specPath, w)
	if err != nil {
		return err
	}

	if !eng.Spec().HasState(from) {
		fmt.Fprintln(w, apperrors.NewArgumentError(
			fmt.Sprintf("--from: %q is not a declared state", from)).Format())
		return NewExitError(ExitInvalidArguments)
	}

	record := &submission.Submission{Status: from}
	result := eng.ValidateTransition(record, to, role, note)

	subject := fmt.Sprintf("%s → %s as %s", from, to, role)
	if err := printResult(w, subject, result, format, colorize); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

func init() {
	transitionCmd.GroupID = GroupWorkflow
	rootCmd.AddCommand(transitionCmd)
	transitionCmd.Flags().StringVar(&transitionFromFlag, "from", "", "Current submission status")
	transitionCmd.Flags().StringVar(&transitionToFlag, "to", "", "Target status")
	transitionCmd.Flags().StringVar(&transitionRoleFlag, "role", "", "Acting role id")
	transitionCmd.Flags().StringVar(&transitionNoteFlag, "note", "", "Note accompanying the transition")
	transitionCmd.MarkFlagRequired("from")
	transitionCmd.MarkFlagRequired("to")
	transitionCmd.MarkFlagRequired("role")
}
