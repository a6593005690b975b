package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAvailabilityCommand creates the availability command.
func NewAvailabilityCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "availability <doctor-id> <date> <time>",
		Short: "Check whether a slot can be booked",
		Long: `Check a doctor/date/time slot against the clinic calendar,
working hours, the doctor's weekly schedule and existing appointments.
Reports the first failing reason.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAvailability(rootOpts, args[0], args[1], args[2], cmd)
		},
	}
}

func runAvailability(opts *RootOptions, doctorID, date, at string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	avail := a.sched.CheckAvailability(doctorID, date, at)
	if opts.Format == "json" {
		if err := formatter.Success(avail); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), avail.Reason)
	}

	if !avail.Available {
		return NewExitError(ExitFailure, avail.Reason)
	}
	return nil
}
