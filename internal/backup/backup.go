// Package backup implements full-store snapshots with rotation, restore,
// and the export/import file formats.
//
// A backup is itself a document in the backups collection, holding a
// point-in-time copy of every collection. Restore overwrites each target
// collection wholesale; it is non-transactional across collections - a
// crash mid-restore leaves a mixed state. That gap is documented, not
// hidden.
package backup

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/badrsabra/clinicpro/internal/config"
	"github.com/badrsabra/clinicpro/internal/store"
)

// Error codes carried in failed envelopes.
const (
	CodeBackupNotFound  = "BACKUP_NOT_FOUND"
	CodeMalformedImport = "MALFORMED_IMPORT"
)

// Snapshot is the stored backup payload.
type Snapshot struct {
	ID        string                      `json:"id"`
	Timestamp int64                       `json:"timestamp"` // unix millis, rotation order
	Date      string                      `json:"date"`      // ISO-8601
	Data      map[string][]store.Document `json:"data"`
	Size      int                         `json:"size"` // serialized bytes of Data
	CreatedBy string                      `json:"createdBy"`
}

// Manager captures, rotates and restores snapshots.
type Manager struct {
	db  *store.DB
	cfg config.Backup
}

// NewManager creates a backup manager. Retention and cadence come from
// the backup_settings document when present, falling back to cfg.
func NewManager(db *store.DB, cfg config.Backup) *Manager {
	return &Manager{db: db, cfg: cfg}
}

// Create snapshots every collection into one backup document, appends it
// to the backups collection and trims to the retention count, discarding
// the oldest entries by timestamp.
func (m *Manager) Create() store.Result {
	data := make(map[string][]store.Document, len(store.Collections))
	for _, name := range store.Collections {
		docs, err := m.db.ReadCollection(name)
		if err != nil {
			return store.Result{
				Success: false,
				Error:   string(store.CodeSerializationFailed),
				Message: "snapshot " + name + ": " + err.Error(),
			}
		}
		data[name] = docs
	}

	serialized, err := json.Marshal(data)
	if err != nil {
		return store.Result{
			Success: false,
			Error:   string(store.CodeSerializationFailed),
			Message: "encode snapshot: " + err.Error(),
		}
	}

	now := m.db.Clock().Now()
	res := m.db.Create(store.Backups, store.Document{
		"timestamp": now.UnixMilli(),
		"date":      now.UTC().Format(time.RFC3339),
		"data":      data,
		"size":      len(serialized),
	})
	if !res.Success {
		return res
	}

	if err := m.rotate(); err != nil {
		return store.Result{
			Success: false,
			Error:   string(store.CodeSerializationFailed),
			Message: "rotate backups: " + err.Error(),
		}
	}
	_ = m.db.Adapter().Set(store.KeyLastBackup, strconv.FormatInt(now.UnixMilli(), 10))

	return res
}

// rotate trims the backups collection to the retention count, keeping
// the newest entries by timestamp.
func (m *Manager) rotate() error {
	keep := m.retention()
	docs, err := m.db.ReadCollection(store.Backups)
	if err != nil {
		return err
	}
	if len(docs) <= keep {
		return nil
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return timestampOf(docs[i]) > timestampOf(docs[j])
	})
	return m.db.WriteCollection(store.Backups, docs[:keep])
}

// Restore overwrites every known collection with the backup's saved
// copies. Unknown keys in the snapshot are skipped. Restoring is not
// transactional across collections.
func (m *Manager) Restore(id string) store.Result {
	doc := m.db.GetByID(store.Backups, id)
	if doc == nil {
		return store.Result{
			Success: false,
			Error:   CodeBackupNotFound,
			Message: "backup not found",
		}
	}

	data, isMap := doc["data"].(map[string]any)
	if !isMap {
		return store.Result{
			Success: false,
			Error:   string(store.CodeSerializationFailed),
			Message: "backup payload is unreadable",
		}
	}

	for _, name := range store.Collections {
		raw, present := data[name]
		if !present {
			continue
		}
		docs, err := toDocuments(raw)
		if err != nil {
			return store.Result{
				Success: false,
				Error:   string(store.CodeSerializationFailed),
				Message: "restore " + name + ": " + err.Error(),
			}
		}
		if err := m.db.WriteCollection(name, docs); err != nil {
			return store.Result{
				Success: false,
				Error:   string(store.CodeQuotaExceeded),
				Message: "restore " + name + ": " + err.Error(),
			}
		}
	}
	return store.Result{Success: true, Message: "backup restored"}
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]Snapshot, error) {
	docs, err := m.db.ReadCollection(store.Backups)
	if err != nil {
		return nil, err
	}
	snaps, err := store.DecodeAll[Snapshot](docs)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].Timestamp > snaps[j].Timestamp
	})
	return snaps, nil
}

func (m *Manager) retention() int {
	if settings := m.db.SettingValue(store.SettingBackup); settings != nil {
		if n, isNum := settings["keepBackups"].(float64); isNum && n > 0 {
			return int(n)
		}
	}
	return m.cfg.Keep
}

func timestampOf(doc store.Document) int64 {
	switch n := doc["timestamp"].(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}

// toDocuments converts a decoded JSON value back into a document list.
func toDocuments(v any) ([]store.Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var docs []store.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []store.Document{}
	}
	return docs, nil
}
