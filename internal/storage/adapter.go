// Package storage defines the synchronous key-value primitive the store
// is built on, and its two implementations.
//
// The adapter is the sole I/O boundary of the system: string keys to
// string values, each call atomic from the caller's perspective, with a
// small origin-style byte budget. Everything above it (collections,
// sessions, backups) is serialized JSON living in these values.
package storage

import (
	"errors"
	"fmt"
)

// DefaultQuota is the byte budget applied when none is configured.
// Sized to match the few-megabyte capacity of browser origin storage.
const DefaultQuota = 5 << 20

// ErrQuotaExceeded is returned by Set when writing the value would push
// total usage (keys + values) past the adapter's byte budget. The prior
// value of the key is left unchanged.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrUnavailable indicates the startup probe failed and the adapter
// cannot be used. Initialization must halt on this error.
var ErrUnavailable = errors.New("storage unavailable")

// Adapter is the synchronous storage primitive.
//
// Implementations must make each call atomic: a Set either stores the
// full value or leaves the previous state untouched. Implementations are
// not required to be safe for concurrent use; the store layer serializes
// all access.
type Adapter interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	// Returns ErrQuotaExceeded when the byte budget would be exceeded.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is a no-op.
	Remove(key string)

	// Keys returns all present keys, in no particular order.
	Keys() []string
}

// Probe verifies the adapter works by performing a throwaway
// write/read/delete cycle. A failure means the whole system must refuse
// to initialize.
func Probe(a Adapter) error {
	const probeKey = "__clinicpro_probe__"

	if err := a.Set(probeKey, probeKey); err != nil {
		return fmt.Errorf("%w: probe write: %v", ErrUnavailable, err)
	}
	v, ok := a.Get(probeKey)
	if !ok || v != probeKey {
		a.Remove(probeKey)
		return fmt.Errorf("%w: probe read back %q", ErrUnavailable, v)
	}
	a.Remove(probeKey)
	if _, ok := a.Get(probeKey); ok {
		return fmt.Errorf("%w: probe delete did not take", ErrUnavailable)
	}
	return nil
}
