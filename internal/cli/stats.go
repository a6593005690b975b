package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Print record totals and revenue rollups",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	stats := a.reports.Statistics()
	if opts.Format == "json" {
		return formatter.Success(stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "patients: %d  doctors: %d  appointments: %d  users: %d\n",
		stats.Total.Patients, stats.Total.Doctors, stats.Total.Appointments, stats.Total.Users)
	fmt.Fprintf(out, "today: %d appointment(s), %d new patient(s), revenue %.2f\n",
		stats.Today.Appointments, stats.Today.NewPatients, stats.Today.Revenue)
	fmt.Fprintf(out, "upcoming appointments: %d\n", stats.Upcoming)
	fmt.Fprintf(out, "revenue: total %.2f, pending %.2f\n",
		stats.Financial.TotalRevenue, stats.Financial.PendingPayments)
	return nil
}
