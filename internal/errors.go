package internal

import (
	"errors"
	"fmt"
)

// Precondition causes for rejected submissions
var (
	ErrBusy         = errors.New("a request is already in flight")
	ErrEmptyMessage = errors.New("message is empty")
	ErrNoCredential = errors.New("no credential configured")
)

// PreconditionError represents a submission rejected before any request was made
type PreconditionError struct {
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %v", e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// AuthError represents an authorization failure reported by the completion endpoint
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (status %d)", e.Status)
}

// TransportError represents a non-authentication failure of the wire exchange
type TransportError struct {
	Op     string // "send", "read"
	Status int    // HTTP status, 0 for network-level failures
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error: %s failed (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("transport error: %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StoreError represents errors accessing the local key/value store
type StoreError struct {
	Key string
	Op  string // "open", "read", "write", "clear"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
