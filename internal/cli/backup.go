package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBackupCommand creates the backup command group.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, list and restore snapshots",
	}
	cmd.AddCommand(newBackupCreateCommand(rootOpts))
	cmd.AddCommand(newBackupListCommand(rootOpts))
	cmd.AddCommand(newBackupRestoreCommand(rootOpts))
	return cmd
}

func newBackupCreateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "create",
		Short:         "Snapshot every collection",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			a, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.backups.Create()
			if !res.Success {
				if err := formatter.Error(res.Error, res.Message, nil); err != nil {
					return err
				}
				return NewExitError(ExitCommandError, res.Message)
			}
			if rootOpts.Format == "json" {
				return formatter.Success(res.Data)
			}
			return formatter.Success("created backup " + res.Data.ID())
		},
	}
}

func newBackupListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List snapshots, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			a, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			snaps, err := a.backups.List()
			if err != nil {
				return WrapExitError(ExitCommandError, "list backups", err)
			}
			if rootOpts.Format == "json" {
				return formatter.Success(snaps)
			}
			for _, snap := range snaps {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d bytes\n", snap.ID, snap.Date, snap.Size)
			}
			return nil
		},
	}
}

func newBackupRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "restore <backup-id>",
		Short:         "Overwrite every collection from a snapshot",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			a, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.backups.Restore(args[0])
			if !res.Success {
				if err := formatter.Error(res.Error, res.Message, nil); err != nil {
					return err
				}
				return NewExitError(ExitFailure, res.Message)
			}
			return formatter.Success(res.Message)
		},
	}
}
