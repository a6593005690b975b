package store

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/badrsabra/clinicpro/internal/clock"
	"github.com/badrsabra/clinicpro/internal/events"
	"github.com/badrsabra/clinicpro/internal/storage"
)

// keyPrefix namespaces every storage key the system owns.
const keyPrefix = "clinicpro_"

// Scalar storage keys, alongside the one-key-per-collection layout.
const (
	KeySession     = keyPrefix + "session"
	KeyInitialized = keyPrefix + "initialized"
	KeyInitDate    = keyPrefix + "init_date"
	KeyLastBackup  = keyPrefix + "last_backup"
	KeyLogoutLogs  = keyPrefix + "logout_logs"
)

// Collection names known to the system.
const (
	Users         = "users"
	Patients      = "patients"
	Doctors       = "doctors"
	Appointments  = "appointments"
	Payments      = "payments"
	Inventory     = "inventory"
	Settings      = "settings"
	Notifications = "notifications"
	Backups       = "backups"
)

// Collections lists every known collection in a stable order.
var Collections = []string{
	Users, Patients, Doctors, Appointments, Payments,
	Inventory, Settings, Notifications, Backups,
}

// idPrefixes maps collections to the prefix used in generated ids.
var idPrefixes = map[string]string{
	Users:         "user",
	Patients:      "patient",
	Doctors:       "doctor",
	Appointments:  "apt",
	Payments:      "pay",
	Inventory:     "inv",
	Settings:      "setting",
	Notifications: "notif",
	Backups:       "backup",
}

// Known reports whether name is one of the known collections.
func Known(name string) bool {
	_, ok := idPrefixes[name]
	return ok
}

// Key returns the storage key for a collection.
func Key(collection string) string {
	return keyPrefix + collection
}

// Options configures a DB. Zero-value fields fall back to defaults:
// a fresh event bus, the system clock, a "system" actor and the
// production id generator.
type Options struct {
	Bus   *events.Bus
	Clock clock.Clock
	Actor func() string             // id stamped into createdBy/updatedBy
	NewID func(prefix string) string // overridden in tests for determinism
}

// DB is the collection store. One instance per process; every consumer
// receives it explicitly rather than through package state.
type DB struct {
	mu      sync.Mutex
	adapter storage.Adapter
	bus     *events.Bus
	clock   clock.Clock
	actor   func() string
	newID   func(prefix string) string
}

// New probes the adapter, initializes any missing collections and marks
// the store initialized. A failed probe is fatal: the returned error has
// code STORAGE_UNAVAILABLE and the caller must not continue.
func New(adapter storage.Adapter, opts Options) (*DB, error) {
	if err := storage.Probe(adapter); err != nil {
		return nil, newError(CodeStorageUnavailable, "storage probe failed", err)
	}

	db := &DB{
		adapter: adapter,
		bus:     opts.Bus,
		clock:   opts.Clock,
		actor:   opts.Actor,
		newID:   opts.NewID,
	}
	if db.bus == nil {
		db.bus = events.NewBus()
	}
	if db.clock == nil {
		db.clock = clock.NewSystem()
	}
	if db.actor == nil {
		db.actor = func() string { return "system" }
	}
	if db.newID == nil {
		db.newID = randomID
	}

	for _, name := range Collections {
		if _, ok := adapter.Get(Key(name)); !ok {
			if err := adapter.Set(Key(name), "[]"); err != nil {
				return nil, newError(CodeStorageUnavailable, "initialize collection "+name, err)
			}
		}
	}
	if _, ok := adapter.Get(KeyInitialized); !ok {
		if err := adapter.Set(KeyInitialized, "true"); err != nil {
			return nil, newError(CodeStorageUnavailable, "mark initialized", err)
		}
		if err := adapter.Set(KeyInitDate, db.clock.Now().UTC().Format(time.RFC3339)); err != nil {
			return nil, newError(CodeStorageUnavailable, "record init date", err)
		}
	}
	return db, nil
}

// Bus returns the event bus consumers subscribe on.
func (db *DB) Bus() *events.Bus { return db.bus }

// Clock returns the injected time source.
func (db *DB) Clock() clock.Clock { return db.clock }

// Adapter returns the underlying storage adapter. Reserved for the
// session and audit keys; collection data goes through store operations.
func (db *DB) Adapter() storage.Adapter { return db.adapter }

// SetActor installs the function that resolves the current actor id for
// createdBy/updatedBy stamps. Wired by the identity manager.
func (db *DB) SetActor(actor func() string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if actor != nil {
		db.actor = actor
	}
}

// Now returns the current time as a stored ISO-8601 string.
func (db *DB) Now() string {
	return db.clock.Now().UTC().Format(time.RFC3339)
}

// Create appends a new document to the collection. The id is assigned
// when absent (collision odds treated as negligible, not re-checked),
// createdAt/updatedAt are stamped and a <collection>_created event is
// emitted on success.
func (db *DB) Create(collection string, data Document) Result {
	db.mu.Lock()
	res := db.createLocked(collection, data)
	db.mu.Unlock()

	if res.Success {
		db.bus.Emit(events.Created(collection), res.Data)
	}
	return res
}

func (db *DB) createLocked(collection string, data Document) Result {
	if !Known(collection) {
		return fail(CodeUnknownCollection, "collection "+collection+" does not exist")
	}
	docs, err := db.readLocked(collection)
	if err != nil {
		return failFromError(err)
	}

	record := data.Clone()
	if record.ID() == "" {
		record["id"] = db.newID(idPrefixes[collection])
	}
	now := db.Now()
	if _, ok := record["createdAt"]; !ok {
		record["createdAt"] = now
	}
	record["updatedAt"] = now
	if _, ok := record["createdBy"]; !ok {
		record["createdBy"] = db.actor()
	}

	docs = append(docs, record)
	if err := db.writeLocked(collection, docs); err != nil {
		return failFromError(err)
	}
	return ok(record, "record created")
}

// GetAll returns every document in the collection, or the subset
// matching all filters. Unknown collections and read failures yield an
// empty list, mirroring the read-side leniency callers rely on.
func (db *DB) GetAll(collection string, filters Filters) []Document {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.getAllLocked(collection, filters)
}

func (db *DB) getAllLocked(collection string, filters Filters) []Document {
	if !Known(collection) {
		return []Document{}
	}
	docs, err := db.readLocked(collection)
	if err != nil {
		return []Document{}
	}
	if len(filters) == 0 {
		return docs
	}
	matched := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if filters.match(doc) {
			matched = append(matched, doc)
		}
	}
	return matched
}

// GetByID returns the document with the given id, or nil if absent.
func (db *DB) GetByID(collection, id string) Document {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, doc := range db.getAllLocked(collection, nil) {
		if doc.ID() == id {
			return doc
		}
	}
	return nil
}

// Update shallow-merges patch onto the document with the given id:
// patch fields replace same-named fields wholesale, everything else is
// retained. The id is immutable and updatedAt is refreshed. Returns a
// RECORD_NOT_FOUND envelope when the id is absent.
func (db *DB) Update(collection, id string, patch Document) Result {
	db.mu.Lock()
	res := db.updateLocked(collection, id, patch)
	db.mu.Unlock()

	if res.Success {
		db.bus.Emit(events.Updated(collection), res.Data)
	}
	return res
}

func (db *DB) updateLocked(collection, id string, patch Document) Result {
	if !Known(collection) {
		return fail(CodeUnknownCollection, "collection "+collection+" does not exist")
	}
	docs, err := db.readLocked(collection)
	if err != nil {
		return failFromError(err)
	}

	for i, doc := range docs {
		if doc.ID() != id {
			continue
		}
		merged := doc.Clone()
		for k, v := range patch {
			merged[k] = v
		}
		merged["id"] = id
		merged["updatedAt"] = db.Now()
		merged["updatedBy"] = db.actor()

		docs[i] = merged
		if err := db.writeLocked(collection, docs); err != nil {
			return failFromError(err)
		}
		return ok(merged, "record updated")
	}
	return fail(CodeRecordNotFound, "record not found")
}

// Delete removes the first document matching id and emits a
// <collection>_deleted event. Returns a RECORD_NOT_FOUND envelope when
// the id is absent.
func (db *DB) Delete(collection, id string) Result {
	db.mu.Lock()
	res := db.deleteLocked(collection, id)
	db.mu.Unlock()

	if res.Success {
		db.bus.Emit(events.Deleted(collection), res.Data)
	}
	return res
}

func (db *DB) deleteLocked(collection, id string) Result {
	if !Known(collection) {
		return fail(CodeUnknownCollection, "collection "+collection+" does not exist")
	}
	docs, err := db.readLocked(collection)
	if err != nil {
		return failFromError(err)
	}

	for i, doc := range docs {
		if doc.ID() != id {
			continue
		}
		docs = append(docs[:i], docs[i+1:]...)
		if err := db.writeLocked(collection, docs); err != nil {
			return failFromError(err)
		}
		return ok(doc, "record deleted")
	}
	return fail(CodeRecordNotFound, "record not found")
}

// ReadCollection returns the raw document list for a collection.
// Used by backup/export; ordinary consumers use GetAll.
func (db *DB) ReadCollection(collection string) ([]Document, error) {
	if !Known(collection) {
		return nil, newError(CodeUnknownCollection, collection, nil)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.readLocked(collection)
}

// WriteCollection replaces a collection's contents wholesale. Used by
// restore/import; no per-document events are emitted.
func (db *DB) WriteCollection(collection string, docs []Document) error {
	if !Known(collection) {
		return newError(CodeUnknownCollection, collection, nil)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.writeLocked(collection, docs)
}

func (db *DB) readLocked(collection string) ([]Document, error) {
	raw, okRead := db.adapter.Get(Key(collection))
	if !okRead || raw == "" {
		return []Document{}, nil
	}
	var docs []Document
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, newError(CodeSerializationFailed, "decode collection "+collection, err)
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}

func (db *DB) writeLocked(collection string, docs []Document) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return newError(CodeSerializationFailed, "encode collection "+collection, err)
	}
	if err := db.adapter.Set(Key(collection), string(data)); err != nil {
		db.bus.Emit(events.DatabaseError, fmt.Sprintf("write %s: %v", collection, err))
		if err == storage.ErrQuotaExceeded {
			return newError(CodeQuotaExceeded, "write collection "+collection, err)
		}
		return newError(CodeStorageUnavailable, "write collection "+collection, err)
	}
	return nil
}

func failFromError(err error) Result {
	if se, okErr := err.(*StoreError); okErr {
		return fail(se.Code, se.Message)
	}
	return fail(CodeSerializationFailed, err.Error())
}

// randomID produces "{prefix}_{base36 millis}_{7 random chars}", the id
// format every stored document carries.
func randomID(prefix string) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	buf := make([]byte, 7)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is not survivable in any useful way
		panic(fmt.Sprintf("random id: %v", err))
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	millis := time.Now().UnixMilli()
	return prefix + "_" + strconv.FormatInt(millis, 36) + "_" + string(buf)
}
