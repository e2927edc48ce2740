package chat

import (
	"fmt"
	"strings"
)

// ValidationError reports every violated input constraint at once, so a
// client can fix all fields in a single round-trip.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// ConflictError marks a duplicate join or a post from an inactive sender.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: participant %q", e.Name)
}

// NotFoundError marks an operation on a participant that is not active.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("participant %q not found", e.Name)
}

// StoreError wraps an underlying persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
