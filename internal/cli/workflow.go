package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/formflow-io/formflow/internal/errors"
	"github.com/formflow-io/formflow/internal/workflow"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow <spec-file>",
	Short: "Inspect an app spec's workflow state machine",
	Long: `Print the workflow state machine declared by an app spec: states,
the transition table, terminal states, reachability, and per-role
transition coverage.

With --strict (or strict: true in config), unreachable states and roles
with zero transitions fail the command.

Exit Codes:
  0 - Workflow printed (and clean under --strict)
  1 - Strict findings (unreachable states or uncovered roles)
  2 - Spec is misconfigured
  3 - Invalid arguments`,
	Example: `  formflow workflow specs/clinic.yaml
  formflow workflow specs/clinic.yaml --strict`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), apperrors.NewConfigurationError(err.Error()).Format())
			return NewExitError(ExitInvalidArguments)
		}
		strict, _ := cmd.Flags().GetBool("strict")
		return runWorkflow(args[0], cmd.OutOrStdout(), strict || cfg.Strict)
	},
}

// runWorkflow prints the state machine and, under strict mode, fails on
// dead configuration.
func runWorkflow(specPath string, w io.Writer, strict bool) error {
	eng, err := loadEngine(specPath, w)
	if err != nil {
		return err
	}
	spec := eng.Spec()

	terminal := toSet(eng.TerminalStates())
	reachable := toSet(workflow.ReachableStates(spec))

	fmt.Fprintln(w, "States:")
	for _, s := range spec.Workflow.States {
		var marks []string
		if s == spec.Workflow.InitialState {
			marks = append(marks, "initial")
		}
		if terminal[s] {
			marks = append(marks, "terminal")
		}
		if !reachable[s] {
			marks = append(marks, "unreachable")
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = fmt.Sprintf("  (%s)", strings.Join(marks, ", "))
		}
		fmt.Fprintf(w, "  %s%s\n", s, suffix)
	}

	fmt.Fprintln(w, "\nTransitions:")
	for _, tr := range spec.Workflow.Transitions {
		note := ""
		if tr.RequiresNote {
			note = "  [note required]"
		}
		fmt.Fprintf(w, "  %s → %s  roles: %s%s\n",
			strings.Join(tr.From, "|"), tr.To, strings.Join(tr.AllowedRoles, ", "), note)
	}

	fmt.Fprintln(w, "\nRole coverage:")
	coverage := workflow.RoleCoverage(spec)
	uncovered := 0
	for _, role := range spec.Roles {
		fmt.Fprintf(w, "  %s: %d transition(s)\n", role.ID, coverage[role.ID])
		if coverage[role.ID] == 0 {
			uncovered++
		}
	}

	if strict {
		findings := uncovered
		for _, s := range spec.Workflow.States {
			if !reachable[s] {
				findings++
			}
		}
		if findings > 0 {
			fmt.Fprintf(w, "\nstrict: %d finding(s)\n", findings)
			return NewExitError(ExitValidationFailed)
		}
	}
	return nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

func init() {
	workflowCmd.GroupID = GroupWorkflow
	rootCmd.AddCommand(workflowCmd)
	workflowCmd.Flags().Bool("strict", false, "Fail on unreachable states and uncovered roles")
}
