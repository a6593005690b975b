package backup

import (
	"encoding/json"
	"fmt"

	"github.com/badrsabra/clinicpro/internal/store"
)

// Export serializes every collection except backups into the portable
// export document. Returns the JSON bytes and the conventional filename,
// "clinicpro-export-YYYY-MM-DD.json".
func (m *Manager) Export() ([]byte, string, error) {
	payload := make(map[string][]store.Document, len(store.Collections)-1)
	for _, name := range store.Collections {
		if name == store.Backups {
			continue
		}
		docs, err := m.db.ReadCollection(name)
		if err != nil {
			return nil, "", fmt.Errorf("export %s: %w", name, err)
		}
		payload[name] = docs
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("encode export: %w", err)
	}

	date := m.db.Clock().Now().UTC().Format("2006-01-02")
	return data, "clinicpro-export-" + date + ".json", nil
}
