// Package scheduling implements appointment availability checking and
// booking on top of the collection store.
//
// Availability is evaluated as an ordered list of checks and reports the
// first failure only: past date, clinic working day, clinic working
// hours, doctor's weekly schedule, then conflicts with existing
// appointments. Conflict detection compares minute-of-day integers, so
// all times are same-day; cross-midnight slots do not occur.
package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/badrsabra/clinicpro/internal/config"
	"github.com/badrsabra/clinicpro/internal/events"
	"github.com/badrsabra/clinicpro/internal/model"
	"github.com/badrsabra/clinicpro/internal/notify"
	"github.com/badrsabra/clinicpro/internal/store"
)

// CodeSlotUnavailable marks booking envelopes rejected by availability.
const CodeSlotUnavailable = "SLOT_UNAVAILABLE"

// Availability is a single verdict with a human-readable reason - the
// first failing check, not a list of all violations.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

// BookingRequest carries the caller-supplied appointment fields.
type BookingRequest struct {
	PatientID string  `json:"patientId"`
	DoctorID  string  `json:"doctorId"`
	Date      string  `json:"date"` // "YYYY-MM-DD"
	Time      string  `json:"time"` // "HH:MM"
	Type      string  `json:"type"`
	Reason    string  `json:"reason"`
	Notes     string  `json:"notes"`
	Fee       float64 `json:"fee"`
}

// Engine checks availability and books appointments.
type Engine struct {
	db       *store.DB
	notifier *notify.Service
	cfg      config.Config
}

// NewEngine creates a scheduling engine. Working days, hours and the
// appointment duration come from the business_settings document when
// present, falling back to cfg.
func NewEngine(db *store.DB, notifier *notify.Service, cfg config.Config) *Engine {
	return &Engine{db: db, notifier: notifier, cfg: cfg}
}

// CheckAvailability evaluates the ordered availability checks for a
// doctor, date and time, returning the first failing reason.
func (e *Engine) CheckAvailability(doctorID, date, at string) Availability {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return Availability{Available: false, Reason: "invalid appointment date"}
	}

	today := e.db.Clock().Now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return Availability{Available: false, Reason: "cannot book an appointment in the past"}
	}

	weekday := day.Weekday().String()
	if !containsDay(e.workingDays(), weekday) {
		return Availability{Available: false, Reason: "the clinic is closed on this day"}
	}

	minutes := timeToMinutes(at)
	start, end := e.workingWindow()
	if minutes < start || minutes > end {
		return Availability{Available: false, Reason: "requested time is outside working hours"}
	}

	doctorDoc := e.db.GetByID(store.Doctors, doctorID)
	if doctorDoc == nil {
		return Availability{Available: false, Reason: "doctor not found"}
	}
	doctor, err := store.Decode[model.Doctor](doctorDoc)
	if err != nil {
		return Availability{Available: false, Reason: "doctor record is unreadable"}
	}
	if !doctorWorksOn(doctor, weekday) {
		return Availability{Available: false, Reason: "doctor is not available on this day"}
	}

	duration := e.appointmentDuration()
	existing := e.db.GetAll(store.Appointments, store.Filters{
		"doctorId": doctorID,
		"date":     date,
		"status":   store.Cond{Op: "in", Value: []string{model.StatusScheduled, model.StatusConfirmed}},
	})
	for _, appt := range existing {
		other := timeToMinutes(fmt.Sprint(appt["time"]))
		if abs(minutes-other) < duration {
			return Availability{Available: false, Reason: "slot conflicts with another appointment"}
		}
	}

	return Availability{Available: true, Reason: "slot is available"}
}

// Book re-runs the availability check and creates the appointment. The
// new record gets a display code ("APT" + trailing timestamp digits,
// a label, not a key), status "scheduled" and payment status "unpaid".
// On success an appointment_booked event fires and patient- and
// doctor-facing notifications are written. On failure the availability
// reason is returned verbatim.
func (e *Engine) Book(req BookingRequest) store.Result {
	avail := e.CheckAvailability(req.DoctorID, req.Date, req.Time)
	if !avail.Available {
		return store.Result{Success: false, Error: CodeSlotUnavailable, Message: avail.Reason}
	}

	apptType := req.Type
	if apptType == "" {
		apptType = "checkup"
	}
	res := e.db.Create(store.Appointments, store.Document{
		"code":          e.displayCode(),
		"patientId":     req.PatientID,
		"doctorId":      req.DoctorID,
		"date":          req.Date,
		"time":          req.Time,
		"type":          apptType,
		"status":        model.StatusScheduled,
		"reason":        req.Reason,
		"notes":         req.Notes,
		"fee":           req.Fee,
		"paymentStatus": model.PaymentUnpaid,
	})
	if !res.Success {
		return res
	}

	when := fmt.Sprintf("%s at %s", req.Date, req.Time)
	e.notifier.Create(req.PatientID, "New appointment",
		"An appointment was booked for you on "+when, "info")
	e.notifier.Create(req.DoctorID, "New appointment",
		"You have a new appointment on "+when, "info")
	e.db.Bus().Emit(events.AppointmentBooked, res.Data)

	return res
}

// displayCode builds the human-readable appointment label.
func (e *Engine) displayCode() string {
	millis := strconv.FormatInt(e.db.Clock().Now().UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return "APT" + millis
}

func (e *Engine) workingDays() []string {
	if business := e.db.SettingValue(store.SettingBusiness); business != nil {
		if days := toStrings(business["workingDays"]); len(days) > 0 {
			return days
		}
	}
	return e.cfg.WorkingDays
}

func (e *Engine) workingWindow() (start, end int) {
	startText := e.cfg.WorkingHours.Start
	endText := e.cfg.WorkingHours.End
	if business := e.db.SettingValue(store.SettingBusiness); business != nil {
		if hours, isMap := business["workingHours"].(map[string]any); isMap {
			if s, isStr := hours["start"].(string); isStr && s != "" {
				startText = s
			}
			if t, isStr := hours["end"].(string); isStr && t != "" {
				endText = t
			}
		}
	}
	return timeToMinutes(startText), timeToMinutes(endText)
}

func (e *Engine) appointmentDuration() int {
	if business := e.db.SettingValue(store.SettingBusiness); business != nil {
		if n, isNum := business["appointmentDuration"].(float64); isNum && n > 0 {
			return int(n)
		}
	}
	return e.cfg.AppointmentDuration
}

func doctorWorksOn(doctor model.Doctor, weekday string) bool {
	for _, entry := range doctor.Schedule {
		if entry.Day == weekday && entry.IsAvailable {
			return true
		}
	}
	return false
}

// timeToMinutes converts "HH:MM" to a minute-of-day integer. Malformed
// input counts as midnight, matching the stored-data tolerance of the
// rest of the system.
func timeToMinutes(at string) int {
	parts := strings.SplitN(strings.TrimSpace(at), ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes := 0
	if len(parts) == 2 {
		if m, err := strconv.Atoi(parts[1]); err == nil {
			minutes = m
		}
	}
	return hours*60 + minutes
}

func containsDay(days []string, want string) bool {
	for _, d := range days {
		if strings.EqualFold(d, want) {
			return true
		}
	}
	return false
}

func toStrings(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, isStr := item.(string); isStr {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
