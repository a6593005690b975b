package store

import "encoding/json"

// ValidationReport is the outcome of a store health check.
type ValidationReport struct {
	Valid     bool     `json:"valid"`
	Issues    []string `json:"issues,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// Validate checks that every collection key exists and parses, that an
// admin user is present and that the clinic settings document exists.
func (db *DB) Validate() ValidationReport {
	var issues []string

	db.mu.Lock()
	for _, name := range Collections {
		raw, present := db.adapter.Get(Key(name))
		if !present {
			issues = append(issues, "collection "+name+" is missing")
			continue
		}
		var docs []Document
		if err := json.Unmarshal([]byte(raw), &docs); err != nil {
			issues = append(issues, "collection "+name+" holds invalid data")
		}
	}
	db.mu.Unlock()

	if len(db.GetAll(Users, Filters{"role": "admin"})) == 0 {
		issues = append(issues, "no admin user exists")
	}
	if db.GetSetting(SettingClinicInfo) == nil {
		issues = append(issues, "clinic settings are missing")
	}

	return ValidationReport{
		Valid:     len(issues) == 0,
		Issues:    issues,
		Timestamp: db.Now(),
	}
}
