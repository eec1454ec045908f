// Package fault defines the structured error kinds shared by the record
// store facade and the reporting engine. Every error crossing a package
// boundary carries a kind plus enough context for the HTTP layer to render
// it; callers match with errors.As or the Is* helpers.
package fault

import (
	"errors"
	"fmt"
)

// Kind identifiers as rendered to API clients.
const (
	KindValidation           = "validation"
	KindReferentialIntegrity = "referential_integrity"
	KindConflict             = "conflict"
	KindUnavailable          = "store_unavailable"
	KindInvalidTransition    = "invalid_transition"
)

// Validation reports a single offending field on a write.
type Validation struct {
	Field   string
	Message string
}

func (e *Validation) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Message)
}

// ReferentialIntegrity blocks a destructive operation on an entity that is
// still referenced by non-terminal records.
type ReferentialIntegrity struct {
	Entity  string
	ID      string
	Message string
}

func (e *ReferentialIntegrity) Error() string {
	return fmt.Sprintf("%s %s is still referenced: %s", e.Entity, e.ID, e.Message)
}

// Conflict is surfaced when a bounded retry loop around a contended
// read-modify-write gives up.
type Conflict struct {
	Message string
}

func (e *Conflict) Error() string {
	return "concurrency conflict: " + e.Message
}

// Unavailable wraps a store round-trip that timed out or could not reach
// the backend. Op names the operation for logging; Err keeps the cause.
type Unavailable struct {
	Op  string
	Err error
}

func (e *Unavailable) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *Unavailable) Unwrap() error { return e.Err }

// InvalidTransition reports a booking state change the lifecycle forbids.
type InvalidTransition struct {
	From string
	To   string
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("invalid booking transition %s -> %s", e.From, e.To)
}

func IsValidation(err error) bool {
	var v *Validation
	return errors.As(err, &v)
}

func IsReferentialIntegrity(err error) bool {
	var r *ReferentialIntegrity
	return errors.As(err, &r)
}

func IsConflict(err error) bool {
	var c *Conflict
	return errors.As(err, &c)
}

func IsUnavailable(err error) bool {
	var u *Unavailable
	return errors.As(err, &u)
}

func IsInvalidTransition(err error) bool {
	var t *InvalidTransition
	return errors.As(err, &t)
}

// Kind returns the kind identifier for a fault error, or "" when err is
// none of the fault types.
func Kind(err error) string {
	switch {
	case IsValidation(err):
		return KindValidation
	case IsReferentialIntegrity(err):
		return KindReferentialIntegrity
	case IsConflict(err):
		return KindConflict
	case IsUnavailable(err):
		return KindUnavailable
	case IsInvalidTransition(err):
		return KindInvalidTransition
	default:
		return ""
	}
}

// Field returns the offending field for validation faults, "" otherwise.
func Field(err error) string {
	var v *Validation
	if errors.As(err, &v) {
		return v.Field
	}
	return ""
}
