package backup

import (
	"strconv"
	"time"

	"github.com/badrsabra/clinicpro/internal/store"
)

// MaybeAuto creates a backup when auto-backup is enabled and the last
// snapshot is older than the configured interval. Returns whether a
// backup ran. Called once at startup and from each Run tick.
func (m *Manager) MaybeAuto() bool {
	if !m.autoEnabled() {
		return false
	}

	if raw, present := m.db.Adapter().Get(store.KeyLastBackup); present {
		last, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			age := m.db.Clock().Now().Sub(time.UnixMilli(last))
			if age <= m.interval() {
				return false
			}
		}
	}
	return m.Create().Success
}

// Run triggers auto-backups on the configured cadence until stop is
// closed. Each tick re-enters the same synchronous API as user-initiated
// calls; the store mutex keeps them from overlapping.
func (m *Manager) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.MaybeAuto()
		case <-stop:
			return
		}
	}
}

func (m *Manager) autoEnabled() bool {
	if settings := m.db.SettingValue(store.SettingBackup); settings != nil {
		if enabled, isBool := settings["autoBackup"].(bool); isBool {
			return enabled
		}
	}
	return m.cfg.Auto
}

func (m *Manager) interval() time.Duration {
	if settings := m.db.SettingValue(store.SettingBackup); settings != nil {
		if hours, isNum := settings["backupInterval"].(float64); isNum && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
	}
	return m.cfg.Interval()
}
