package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Overwrite collections from an export file",
		Long: `Import an export file. Top-level keys naming known collections
overwrite those collections wholesale; unknown keys are ignored.
Malformed files are rejected before any collection is touched.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read import file", err)
	}

	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	res := a.backups.Import(data)
	if !res.Success {
		if err := formatter.Error(res.Error, res.Message, nil); err != nil {
			return err
		}
		return NewExitError(ExitFailure, res.Message)
	}
	return formatter.Success(res.Message)
}
