package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check store health",
		Long: `Check that every collection exists and parses, that an admin
user is present and that the clinic settings document exists.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	report := a.db.Validate()
	if report.Valid {
		if opts.Format == "json" {
			return formatter.Success(report)
		}
		return formatter.Success("store is valid")
	}

	if opts.Format == "json" {
		if err := formatter.Error("VALIDATION_FAILED", "store has issues", report.Issues); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "store has %d issue(s):\n", len(report.Issues))
		for _, issue := range report.Issues {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", issue)
		}
	}
	return NewExitError(ExitFailure, "validation failed")
}
