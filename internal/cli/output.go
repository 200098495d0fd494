package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/formflow-io/formflow/internal/config"
	"github.com/formflow-io/formflow/internal/validation"
)

// outputFormat resolves the effective output format from the --output flag
// and the configuration.
func outputFormat(cmd *cobra.Command, cfg *config.Configuration) string {
	if flag, _ := cmd.Flags().GetString("output"); flag != "" {
		return flag
	}
	return cfg.Output
}

// printResult writes a validation result in the chosen format. In text mode
// the subject line gets a colored status mark; JSON mode emits the result
// structure directly so callers can map it into an HTTP response body.
func printResult(w io.Writer, subject string, result *validation.Result, format string, colorize bool) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.Valid {
		fmt.Fprintf(w, "%s %s is valid\n", statusMark(true, colorize), subject)
		return nil
	}

	fmt.Fprintf(w, "%s %s: %d validation error(s)\n", statusMark(false, colorize), subject, len(result.Errors))
	for _, e := range result.Errors {
		fmt.Fprintf(w, "  - %s\n", e.Error())
	}
	return nil
}

func statusMark(ok, colorize bool) string {
	if ok {
		if colorize {
			return color.GreenString("✓")
		}
		return "✓"
	}
	if colorize {
		return color.RedString("✗")
	}
	return "✗"
}
