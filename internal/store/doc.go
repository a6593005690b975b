// Package store implements the collection store: generic CRUD, filtering
// and search over named collections of schema-less documents, persisted
// through the storage adapter.
//
// # Data layout
//
// Each collection is one storage key holding a JSON array of documents.
// Every mutation is a whole-collection read-modify-write: the list is
// read, changed in memory, re-serialized and written back with a single
// adapter Set. The adapter's per-call atomicity is therefore the write
// atomicity of the store - a failed write leaves the prior list intact.
//
// # Critical behaviors
//
//   - Document ids are assigned at creation when absent and never
//     reassigned; Update preserves the existing id even if the patch
//     carries one.
//   - Mutating operations return a Result envelope instead of raising.
//     Internal failures (unknown collection, serialization, quota) are
//     converted to failed envelopes with a stable error code.
//   - An unrecognized filter operator matches everything. This mirrors
//     the behavior consumers already depend on; see DESIGN.md.
//   - A process-wide mutex serializes all operations. Within one process
//     this reproduces the single-threaded host the layout was designed
//     for; cross-process writers are not coordinated.
package store
