package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/knadh/koanf/providers/file"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/formflow-io/formflow/internal/appspec"
	apperrors "github.com/formflow-io/formflow/internal/errors"
	"github.com/formflow-io/formflow/internal/progress"
	"github.com/formflow-io/formflow/internal/validation"
)

var validateWatchFlag bool

var validateCmd = &cobra.Command{
	Use:   "validate <spec-file>",
	Short: "Validate an app spec file against the schema",
	Long: `Validate an app spec file (JSON or YAML) against the schema.

Checks:
  - Required sections present (id, version, meta, roles, pages, workflow,
    api, analytics, environments)
  - Role ids unique; page roles declared
  - Field ids unique per page; select/radio fields carry options
  - Workflow states non-empty; initialState and every transition endpoint
    declared; allowedRoles reference declared roles

Exit Codes:
  0 - Spec is valid
  2 - Spec is misconfigured
  3 - Invalid arguments or unreadable file`,
	Example: `  formflow validate specs/clinic.yaml
  formflow validate specs/clinic.json --output json
  formflow validate specs/clinic.yaml --watch`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), apperrors.NewConfigurationError(err.Error()).Format())
			return NewExitError(ExitInvalidArguments)
		}
		if validateWatchFlag {
			return watchSpec(args[0], cmd, cfg.Color, outputFormat(cmd, cfg), cfg.ShowProgress)
		}
		return runValidate(args[0], cmd.OutOrStdout(), outputFormat(cmd, cfg), cfg.Color)
	},
}

// runValidate validates one spec file and prints the outcome.
func runValidate(path string, w io.Writer, format string, colorize bool) error {
	result, err := checkSpecFile(path)
	if err != nil {
		fmt.Fprintln(w, apperrors.NewArgumentError(err.Error(), "check the file path and syntax").Format())
		return NewExitError(ExitInvalidArguments)
	}

	if err := printResult(w, path, result, format, colorize); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitSpecMisconfigured)
	}
	return nil
}

// checkSpecFile parses a spec document and runs it through the schema gate.
func checkSpecFile(path string) (*validation.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	doc, err := appspec.ParseUntyped(data, path)
	if err != nil {
		return nil, err
	}
	return validation.CheckAppSpec(doc), nil
}

// watchSpec revalidates the spec on every file change until interrupted.
func watchSpec(path string, cmd *cobra.Command, colorize bool, format string, showProgress bool) error {
	out := cmd.OutOrStdout()

	// Initial pass; watch mode keeps going even when the spec starts out
	// broken, since the author is about to fix it.
	if err := runValidate(path, out, format, colorize); err != nil {
		if ExitCode(err) == ExitInvalidArguments {
			return err
		}
	}

	caps := progress.DetectTerminalCapabilities()
	var watcher *progress.Watcher
	if showProgress {
		watcher = progress.NewWatcher(caps)
		watcher.Idle(fmt.Sprintf("watching %s", path))
	}

	provider := file.Provider(path)
	err := provider.Watch(func(event interface{}, err error) {
		if watcher != nil {
			watcher.Stop()
		}
		if err != nil {
			log.Debug().Err(err).Msg("watch event error")
			return
		}
		fmt.Fprintf(out, "--- %s changed\n", path)
		_ = runValidate(path, out, format, colorize)
		if watcher != nil {
			watcher.Idle(fmt.Sprintf("watching %s", path))
		}
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	// Block until interrupted; revalidation happens on the watcher's
	// goroutine.
	select {}
}

func init() {
	validateCmd.GroupID = GroupValidation
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVarP(&validateWatchFlag, "watch", "w", false, "Re-validate whenever the file changes")
}
