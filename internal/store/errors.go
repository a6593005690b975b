package store

import (
	"errors"
	"fmt"
)

// Code categorizes store failures. Codes appear in Result envelopes and
// in StoreError values, so callers can branch without string matching.
type Code string

const (
	// CodeStorageUnavailable indicates the startup probe failed. Fatal.
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"

	// CodeQuotaExceeded indicates a write was rejected by the storage
	// byte budget. The operation aborted with prior state unchanged.
	CodeQuotaExceeded Code = "QUOTA_EXCEEDED"

	// CodeRecordNotFound indicates the requested id is absent.
	CodeRecordNotFound Code = "RECORD_NOT_FOUND"

	// CodeUnknownCollection indicates the named collection is not one of
	// the known set.
	CodeUnknownCollection Code = "UNKNOWN_COLLECTION"

	// CodeSerializationFailed indicates a collection could not be
	// encoded or decoded as JSON.
	CodeSerializationFailed Code = "SERIALIZATION_FAILED"
)

// StoreError is a coded error for failures that propagate as Go errors
// (initialization, raw collection access). Operation-level failures use
// Result envelopes instead.
type StoreError struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is a StoreError with the given code.
// Uses errors.As to handle wrapped errors.
func IsCode(err error, code Code) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

func newError(code Code, message string, err error) *StoreError {
	return &StoreError{Code: code, Message: message, Err: err}
}
