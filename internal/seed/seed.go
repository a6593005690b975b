// Package seed installs the first-run dataset: the admin account, the
// default practitioners and schedules, starter inventory and the default
// settings documents.
package seed

import (
	"fmt"

	"github.com/badrsabra/clinicpro/internal/auth"
	"github.com/badrsabra/clinicpro/internal/config"
	"github.com/badrsabra/clinicpro/internal/store"
)

// DefaultAdminPassword is the bootstrap credential. Operators are
// expected to change it after first login.
const DefaultAdminPassword = "Admin@123"

// FirstRun reports whether the essential collections are still empty.
func FirstRun(db *store.DB) bool {
	return len(db.GetAll(store.Users, nil)) == 0 ||
		len(db.GetAll(store.Doctors, nil)) == 0 ||
		len(db.GetAll(store.Settings, nil)) == 0
}

// Run seeds the store on first run. A store that already holds data is
// left untouched, so Run is safe to call on every startup.
func Run(db *store.DB, cfg config.Config) error {
	if !FirstRun(db) {
		return nil
	}
	if err := seedSettings(db, cfg); err != nil {
		return err
	}
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedDoctors(db); err != nil {
		return err
	}
	return seedInventory(db)
}

func seedAdmin(db *store.DB) error {
	if len(db.GetAll(store.Users, nil)) > 0 {
		return nil
	}
	hash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	res := db.Create(store.Users, store.Document{
		"username":      "admin",
		"email":         "admin@clinicpro.local",
		"password":      hash,
		"fullName":      "System Administrator",
		"role":          "admin",
		"status":        "active",
		"permissions":   []string{"*"},
		"loginAttempts": 0,
		"accountLocked": false,
	})
	if !res.Success {
		return fmt.Errorf("seed admin: %s", res.Message)
	}
	return nil
}

func seedDoctors(db *store.DB) error {
	if len(db.GetAll(store.Doctors, nil)) > 0 {
		return nil
	}

	fullWeek := func(days ...string) []map[string]any {
		schedule := make([]map[string]any, len(days))
		for i, day := range days {
			schedule[i] = map[string]any{
				"day": day, "from": "09:00", "to": "17:00", "isAvailable": true,
			}
		}
		return schedule
	}

	doctors := []store.Document{
		{
			"code":            "DOC001",
			"name":            "Dr. Ahmed Mohamed",
			"specialty":       "Dentistry",
			"phone":           "+20123456789",
			"email":           "ahmed@clinicpro.local",
			"schedule":        fullWeek("Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"),
			"consultationFee": 200.0,
			"status":          "active",
		},
		{
			"code":            "DOC002",
			"name":            "Dr. Sara Khaled",
			"specialty":       "Dermatology",
			"phone":           "+20123456790",
			"email":           "sara@clinicpro.local",
			"schedule":        fullWeek("Sunday", "Tuesday", "Thursday"),
			"consultationFee": 250.0,
			"status":          "active",
		},
	}
	for _, doctor := range doctors {
		if res := db.Create(store.Doctors, doctor); !res.Success {
			return fmt.Errorf("seed doctor: %s", res.Message)
		}
	}
	return nil
}

func seedInventory(db *store.DB) error {
	if len(db.GetAll(store.Inventory, nil)) > 0 {
		return nil
	}
	items := []store.Document{
		{
			"code": "MED001", "name": "Paracetamol 500mg", "category": "analgesics",
			"unit": "box", "quantity": 100, "minQuantity": 20, "price": 15.50,
			"status": "available",
		},
		{
			"code": "MED002", "name": "Amoxicillin 250mg", "category": "antibiotics",
			"unit": "box", "quantity": 50, "minQuantity": 10, "price": 45.00,
			"status": "available",
		},
	}
	for _, item := range items {
		if res := db.Create(store.Inventory, item); !res.Success {
			return fmt.Errorf("seed inventory: %s", res.Message)
		}
	}
	return nil
}

func seedSettings(db *store.DB, cfg config.Config) error {
	if len(db.GetAll(store.Settings, nil)) > 0 {
		return nil
	}
	defaults := []struct {
		key      string
		category string
		value    map[string]any
	}{
		{
			key: store.SettingClinicInfo, category: "general",
			value: map[string]any{
				"name":    cfg.ClinicName,
				"address": cfg.ClinicAddress,
				"phone":   cfg.ClinicPhone,
			},
		},
		{
			key: store.SettingBusiness, category: "business",
			value: map[string]any{
				"currency":            cfg.Currency,
				"appointmentDuration": cfg.AppointmentDuration,
				"workingHours": map[string]any{
					"start": cfg.WorkingHours.Start,
					"end":   cfg.WorkingHours.End,
				},
				"workingDays": cfg.WorkingDays,
			},
		},
		{
			key: store.SettingNotifications, category: "notifications",
			value: map[string]any{
				"appointmentReminders": true,
				"lowStockAlerts":       true,
				"paymentReminders":     true,
			},
		},
		{
			key: store.SettingBackup, category: "backup",
			value: map[string]any{
				"autoBackup":     cfg.Backup.Auto,
				"backupInterval": cfg.Backup.IntervalHours,
				"keepBackups":    cfg.Backup.Keep,
			},
		},
	}

	for _, setting := range defaults {
		res := db.Create(store.Settings, store.Document{
			"key":      setting.key,
			"value":    setting.value,
			"category": setting.category,
		})
		if !res.Success {
			return fmt.Errorf("seed setting %s: %s", setting.key, res.Message)
		}
	}
	return nil
}
