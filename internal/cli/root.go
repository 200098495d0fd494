// Package cli provides the Cobra-based formflow commands: spec validation
// (validate), submission checking (check), workflow dry-runs (transition),
// and workflow introspection (workflow).
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/formflow-io/formflow/internal/build"
	"github.com/formflow-io/formflow/internal/config"
)

// Command group IDs for organizing help output.
const (
	GroupValidation = "validation"
	GroupWorkflow   = "workflow"
)

var rootCmd = &cobra.Command{
	Use:   "formflow",
	Short: "formflow spec validation and workflow checks",
	Long: `formflow validates declarative app specs, checks submitted form data
against them, and dry-runs workflow transitions.

An app spec declares pages, fields, roles, and a workflow state machine.
formflow verifies the spec itself is well-formed, validates untrusted
submission payloads against its field definitions, and answers whether a
role-gated status change is legal.`,
	Example: `  # Validate an app spec
  formflow validate specs/clinic.yaml

  # Re-validate on every change
  formflow validate specs/clinic.yaml --watch

  # Check a submission payload against the spec
  formflow check specs/clinic.yaml payload.json --role PATIENT

  # Dry-run a workflow transition
  formflow transition specs/clinic.yaml --from DRAFT --to SUBMITTED --role PATIENT

  # Inspect the workflow state machine
  formflow workflow specs/clinic.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return ExitCode(err)
	}
	return ExitSuccess
}

// loadConfig loads the layered configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	return config.Load(configPath)
}

// setupLogging configures the global zerolog logger. The engine itself
// never logs; this only covers CLI diagnostics behind --debug.
func setupLogging(cmd *cobra.Command) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		// Config problems are reported by the command itself; default the
		// log level here.
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		return nil
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

func init() {
	rootCmd.Version = build.String()
	rootCmd.AddGroup(&cobra.Group{ID: GroupValidation, Title: "Validation:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupWorkflow, Title: "Workflow:"})

	rootCmd.PersistentFlags().StringP("config", "c", ".formflow/config.json", "Path to config file")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: text or json (overrides config)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
}
