package cli

import (
	"github.com/spf13/cobra"

	"github.com/badrsabra/clinicpro/internal/seed"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the store and seed first-run data",
		Long: `Initialize the store at the configured path.

Creates every collection, and on an empty store seeds the admin account,
default practitioners, starter inventory and the default settings
documents. Running init on an existing store is a no-op.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	seeded := seed.FirstRun(a.db)
	if err := seed.Run(a.db, a.cfg); err != nil {
		return WrapExitError(ExitCommandError, "seed store", err)
	}

	if seeded {
		formatter.VerboseLog("seeded first-run data into %s", opts.DBPath)
		return formatter.Success("store initialized")
	}
	return formatter.Success("store already initialized")
}
