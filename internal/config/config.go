// Package config loads the clinic configuration from YAML and supplies
// the defaults used when no file (or a partial file) is given.
//
// These values are only the bootstrap defaults: working days, hours and
// appointment duration are also stored as a business_settings document in
// the settings collection, which takes precedence once present.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// WorkingHours is the clinic-wide booking window, inclusive at both ends.
type WorkingHours struct {
	Start string `yaml:"start"` // "HH:MM"
	End   string `yaml:"end"`   // "HH:MM"
}

// Security holds authentication tuning.
type Security struct {
	MaxLoginAttempts int `yaml:"max_login_attempts"`
	LockoutMinutes   int `yaml:"lockout_minutes"`
	SessionMinutes   int `yaml:"session_minutes"`
}

// Backup holds snapshot cadence and retention.
type Backup struct {
	Auto          bool `yaml:"auto"`
	IntervalHours int  `yaml:"interval_hours"`
	Keep          int  `yaml:"keep"`
}

// Config is the full clinic configuration.
type Config struct {
	ClinicName          string       `yaml:"clinic_name"`
	ClinicAddress       string       `yaml:"clinic_address"`
	ClinicPhone         string       `yaml:"clinic_phone"`
	Currency            string       `yaml:"currency"`
	WorkingHours        WorkingHours `yaml:"working_hours"`
	WorkingDays         []string     `yaml:"working_days"`
	AppointmentDuration int          `yaml:"appointment_duration"` // minutes
	Security            Security     `yaml:"security"`
	Backup              Backup       `yaml:"backup"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ClinicName:    "ClinicPro",
		ClinicAddress: "Main Hospital Street",
		ClinicPhone:   "+966500000000",
		Currency:      "SAR",
		WorkingHours:  WorkingHours{Start: "08:00", End: "20:00"},
		WorkingDays: []string{
			"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday",
		},
		AppointmentDuration: 30,
		Security: Security{
			MaxLoginAttempts: 5,
			LockoutMinutes:   15,
			SessionMinutes:   30,
		},
		Backup: Backup{
			Auto:          true,
			IntervalHours: 24,
			Keep:          30,
		},
	}
}

// Load reads a YAML config file and merges it over the defaults.
// Fields absent from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalize(), nil
}

// normalize backfills zero values a partial file may have left behind.
func (c Config) normalize() Config {
	def := Default()
	if c.WorkingHours.Start == "" {
		c.WorkingHours.Start = def.WorkingHours.Start
	}
	if c.WorkingHours.End == "" {
		c.WorkingHours.End = def.WorkingHours.End
	}
	if len(c.WorkingDays) == 0 {
		c.WorkingDays = def.WorkingDays
	}
	if c.AppointmentDuration <= 0 {
		c.AppointmentDuration = def.AppointmentDuration
	}
	if c.Security.MaxLoginAttempts <= 0 {
		c.Security.MaxLoginAttempts = def.Security.MaxLoginAttempts
	}
	if c.Security.LockoutMinutes <= 0 {
		c.Security.LockoutMinutes = def.Security.LockoutMinutes
	}
	if c.Security.SessionMinutes <= 0 {
		c.Security.SessionMinutes = def.Security.SessionMinutes
	}
	if c.Backup.IntervalHours <= 0 {
		c.Backup.IntervalHours = def.Backup.IntervalHours
	}
	if c.Backup.Keep <= 0 {
		c.Backup.Keep = def.Backup.Keep
	}
	return c
}

// Lockout returns the lockout window as a duration.
func (s Security) Lockout() time.Duration {
	return time.Duration(s.LockoutMinutes) * time.Minute
}

// SessionTimeout returns the session lifetime as a duration.
func (s Security) SessionTimeout() time.Duration {
	return time.Duration(s.SessionMinutes) * time.Minute
}

// Interval returns the auto-backup cadence as a duration.
func (b Backup) Interval() time.Duration {
	return time.Duration(b.IntervalHours) * time.Hour
}
