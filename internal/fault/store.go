package fault

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FromStore classifies an error returned by a Firestore round-trip.
// Deadline expiry and unreachable backends become Unavailable, exhausted
// transaction retries become Conflict, anything else passes through
// untouched so callers keep their own sentinel wrapping.
func FromStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Unavailable{Op: op, Err: err}
	}
	switch status.Code(err) {
	case codes.DeadlineExceeded, codes.Unavailable:
		return &Unavailable{Op: op, Err: err}
	case codes.Aborted:
		return &Conflict{Message: op + " retries exhausted"}
	}
	return err
}
