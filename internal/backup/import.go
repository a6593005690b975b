package backup

import (
	"encoding/json"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/badrsabra/clinicpro/internal/store"
)

// importSchema constrains an import file: every known collection, when
// present, must be a list of documents. Unknown top-level keys pass
// through unconstrained and are ignored by the importer.
const importSchema = `
{
	users?:         [...{...}]
	patients?:      [...{...}]
	doctors?:       [...{...}]
	appointments?:  [...{...}]
	payments?:      [...{...}]
	inventory?:     [...{...}]
	settings?:      [...{...}]
	notifications?: [...{...}]
	backups?:       [...{...}]
	...
}
`

// Import replaces collections from an export file. Top-level keys that
// name known collections overwrite those collections wholesale; unknown
// keys are ignored. Malformed JSON or a payload violating the schema is
// rejected with MALFORMED_IMPORT before any collection is touched.
func (m *Manager) Import(data []byte) store.Result {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return store.Result{
			Success: false,
			Error:   CodeMalformedImport,
			Message: "import file is not valid JSON: " + err.Error(),
		}
	}

	if err := validateImport(payload); err != nil {
		return store.Result{
			Success: false,
			Error:   CodeMalformedImport,
			Message: "import file has an invalid shape: " + err.Error(),
		}
	}

	for _, name := range store.Collections {
		raw, present := payload[name]
		if !present {
			continue
		}
		docs, err := toDocuments(raw)
		if err != nil {
			return store.Result{
				Success: false,
				Error:   CodeMalformedImport,
				Message: "import " + name + ": " + err.Error(),
			}
		}
		if err := m.db.WriteCollection(name, docs); err != nil {
			return store.Result{
				Success: false,
				Error:   string(store.CodeQuotaExceeded),
				Message: "import " + name + ": " + err.Error(),
			}
		}
	}
	return store.Result{Success: true, Message: "data imported"}
}

// validateImport unifies the decoded payload with the import schema.
func validateImport(payload map[string]any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(importSchema)
	if err := schema.Err(); err != nil {
		return err
	}
	value := ctx.Encode(payload)
	if err := value.Err(); err != nil {
		return err
	}
	return schema.Unify(value).Validate(cue.Final())
}
