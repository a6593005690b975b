package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Write all collections (except backups) to a JSON file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, outPath, cmd)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (defaults to the dated export filename)")
	return cmd
}

func runExport(opts *RootOptions, outPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	data, filename, err := a.backups.Export()
	if err != nil {
		return WrapExitError(ExitCommandError, "export", err)
	}
	if outPath == "" {
		outPath = filename
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "write export file", err)
	}

	formatter.VerboseLog("wrote %d bytes", len(data))
	return formatter.Success("exported to " + outPath)
}
