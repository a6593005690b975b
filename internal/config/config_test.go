package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clinicpro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "ClinicPro", cfg.ClinicName)
	assert.Equal(t, "08:00", cfg.WorkingHours.Start)
	assert.Equal(t, "20:00", cfg.WorkingHours.End)
	assert.Len(t, cfg.WorkingDays, 5)
	assert.Equal(t, 30, cfg.AppointmentDuration)
	assert.Equal(t, 5, cfg.Security.MaxLoginAttempts)
	assert.Equal(t, 30, cfg.Backup.Keep)
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
clinic_name: Harbor Clinic
currency: EGP
working_hours:
  start: "09:00"
  end: "17:00"
working_days: [Monday, Tuesday]
appointment_duration: 45
security:
  max_login_attempts: 3
  lockout_minutes: 5
  session_minutes: 10
backup:
  auto: false
  interval_hours: 6
  keep: 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Harbor Clinic", cfg.ClinicName)
	assert.Equal(t, "EGP", cfg.Currency)
	assert.Equal(t, WorkingHours{Start: "09:00", End: "17:00"}, cfg.WorkingHours)
	assert.Equal(t, []string{"Monday", "Tuesday"}, cfg.WorkingDays)
	assert.Equal(t, 45, cfg.AppointmentDuration)
	assert.Equal(t, 3, cfg.Security.MaxLoginAttempts)
	assert.False(t, cfg.Backup.Auto)
	assert.Equal(t, 7, cfg.Backup.Keep)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "clinic_name: Partial Clinic\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Partial Clinic", cfg.ClinicName)
	assert.Equal(t, "08:00", cfg.WorkingHours.Start)
	assert.Equal(t, 30, cfg.AppointmentDuration)
	assert.Equal(t, 15, cfg.Security.LockoutMinutes)
	assert.Equal(t, 24, cfg.Backup.IntervalHours)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "clinic_name: [unterminated\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 15*time.Minute, cfg.Security.Lockout())
	assert.Equal(t, 30*time.Minute, cfg.Security.SessionTimeout())
	assert.Equal(t, 24*time.Hour, cfg.Backup.Interval())
}
