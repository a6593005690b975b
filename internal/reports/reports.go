// Package reports derives read-only statistics from the store: record
// totals, daily and overall revenue, pending payments and the upcoming
// appointment list.
package reports

import (
	"sort"

	"github.com/badrsabra/clinicpro/internal/model"
	"github.com/badrsabra/clinicpro/internal/store"
)

// Totals counts records per collection.
type Totals struct {
	Patients     int `json:"patients"`
	Doctors      int `json:"doctors"`
	Appointments int `json:"appointments"`
	Users        int `json:"users"`
	Payments     int `json:"payments"`
}

// Today summarizes the current calendar date.
type Today struct {
	Appointments int     `json:"appointments"`
	NewPatients  int     `json:"newPatients"`
	Revenue      float64 `json:"revenue"`
}

// Financial is the money rollup.
type Financial struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingPayments float64 `json:"pendingPayments"`
	CollectedToday  float64 `json:"collectedToday"`
}

// Statistics is the full dashboard summary.
type Statistics struct {
	Total     Totals    `json:"total"`
	Today     Today     `json:"today"`
	Upcoming  int       `json:"upcoming"`
	Financial Financial `json:"financial"`
}

// Service computes statistics over the store.
type Service struct {
	db *store.DB
}

// NewService creates a reports service.
func NewService(db *store.DB) *Service {
	return &Service{db: db}
}

// Statistics assembles the dashboard summary for the current date.
func (s *Service) Statistics() Statistics {
	today := s.db.Clock().Now().UTC().Format("2006-01-02")
	dailyRevenue := s.DailyRevenue(today)

	return Statistics{
		Total: Totals{
			Patients:     len(s.db.GetAll(store.Patients, nil)),
			Doctors:      len(s.db.GetAll(store.Doctors, nil)),
			Appointments: len(s.db.GetAll(store.Appointments, nil)),
			Users:        len(s.db.GetAll(store.Users, nil)),
			Payments:     len(s.db.GetAll(store.Payments, nil)),
		},
		Today: Today{
			Appointments: len(s.db.GetAll(store.Appointments, store.Filters{"date": today})),
			NewPatients: len(s.db.GetAll(store.Patients, store.Filters{
				"createdAt": store.Cond{Op: "contains", Value: today},
			})),
			Revenue: dailyRevenue,
		},
		Upcoming: len(s.Upcoming(0)),
		Financial: Financial{
			TotalRevenue:    s.TotalRevenue(),
			PendingPayments: s.PendingPayments(),
			CollectedToday:  dailyRevenue,
		},
	}
}

// DailyRevenue sums completed payments for one calendar date.
func (s *Service) DailyRevenue(date string) float64 {
	return sumAmounts(s.db.GetAll(store.Payments, store.Filters{
		"date":   date,
		"status": "completed",
	}))
}

// TotalRevenue sums all completed payments.
func (s *Service) TotalRevenue() float64 {
	return sumAmounts(s.db.GetAll(store.Payments, store.Filters{
		"status": "completed",
	}))
}

// PendingPayments sums the fees of unpaid appointments.
func (s *Service) PendingPayments() float64 {
	var total float64
	for _, doc := range s.db.GetAll(store.Appointments, store.Filters{
		"paymentStatus": model.PaymentUnpaid,
	}) {
		if fee, isNum := doc["fee"].(float64); isNum {
			total += fee
		}
	}
	return total
}

// Upcoming returns future scheduled or confirmed appointments sorted by
// date then time. A non-positive limit returns all of them.
func (s *Service) Upcoming(limit int) []model.Appointment {
	today := s.db.Clock().Now().UTC().Format("2006-01-02")
	docs := s.db.GetAll(store.Appointments, store.Filters{
		"date":   store.Cond{Op: "greaterThan", Value: today},
		"status": store.Cond{Op: "in", Value: []string{model.StatusScheduled, model.StatusConfirmed}},
	})

	appts, err := store.DecodeAll[model.Appointment](docs)
	if err != nil {
		return nil
	}
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
	if limit > 0 && len(appts) > limit {
		appts = appts[:limit]
	}
	return appts
}

func sumAmounts(docs []store.Document) float64 {
	var total float64
	for _, doc := range docs {
		if amount, isNum := doc["amount"].(float64); isNum {
			total += amount
		}
	}
	return total
}
