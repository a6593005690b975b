package cli

import (
	"github.com/spf13/cobra"

	"github.com/badrsabra/clinicpro/internal/scheduling"
)

// NewBookCommand creates the book command.
func NewBookCommand(rootOpts *RootOptions) *cobra.Command {
	var req scheduling.BookingRequest

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		Long: `Book an appointment for a patient with a doctor. The slot is
checked for availability first; a rejected slot reports the reason.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBook(rootOpts, req, cmd)
		},
	}

	cmd.Flags().StringVar(&req.PatientID, "patient", "", "patient id")
	cmd.Flags().StringVar(&req.DoctorID, "doctor", "", "doctor id")
	cmd.Flags().StringVar(&req.Date, "date", "", "appointment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Time, "time", "", "appointment time (HH:MM)")
	cmd.Flags().StringVar(&req.Type, "type", "", "appointment type")
	cmd.Flags().StringVar(&req.Reason, "reason", "", "visit reason")
	cmd.Flags().Float64Var(&req.Fee, "fee", 0, "consultation fee")
	_ = cmd.MarkFlagRequired("patient")
	_ = cmd.MarkFlagRequired("doctor")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func runBook(opts *RootOptions, req scheduling.BookingRequest, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	res := a.sched.Book(req)
	if !res.Success {
		if err := formatter.Error(res.Error, res.Message, nil); err != nil {
			return err
		}
		return NewExitError(ExitFailure, res.Message)
	}

	if opts.Format == "json" {
		return formatter.Success(res.Data)
	}
	return formatter.Success("booked " + res.Data.ID())
}
