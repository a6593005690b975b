package store

// Well-known settings document keys.
const (
	SettingClinicInfo    = "clinic_info"
	SettingBusiness      = "business_settings"
	SettingNotifications = "notification_settings"
	SettingBackup        = "backup_settings"
)

// GetSetting returns the settings document with the given key, or nil.
// Settings are ordinary documents in the settings collection whose "key"
// field identifies them.
func (db *DB) GetSetting(key string) Document {
	for _, doc := range db.GetAll(Settings, nil) {
		if k, _ := doc["key"].(string); k == key {
			return doc
		}
	}
	return nil
}

// SettingValue returns the "value" object of a settings document, or nil
// when the setting (or its value) is absent.
func (db *DB) SettingValue(key string) map[string]any {
	doc := db.GetSetting(key)
	if doc == nil {
		return nil
	}
	value, _ := doc["value"].(map[string]any)
	return value
}

// UpdateSetting upserts a settings document: updates the value in place
// when the key exists, creates a new settings document otherwise.
func (db *DB) UpdateSetting(key string, value map[string]any) Result {
	if existing := db.GetSetting(key); existing != nil {
		return db.Update(Settings, existing.ID(), Document{"value": value})
	}
	return db.Create(Settings, Document{
		"key":      key,
		"value":    value,
		"category": "general",
	})
}

// ClinicSettings aggregates the clinic profile and business settings.
func (db *DB) ClinicSettings() (clinic, business map[string]any) {
	return db.SettingValue(SettingClinicInfo), db.SettingValue(SettingBusiness)
}
