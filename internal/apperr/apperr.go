// Package apperr defines the error taxonomy surfaced by the service layer.
// Callers match with errors.Is; the sentinel text is what the API is allowed
// to show, anything more specific stays in logs.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated - no resolvable identity on the request.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrIdentityIncomplete - the external identity carries no email, so a
	// local owner cannot be created.
	ErrIdentityIncomplete = errors.New("identity has no email address")

	// ErrValidation - malformed caller input (empty fields, bad amount,
	// unparseable date).
	ErrValidation = errors.New("invalid input")

	// ErrNotFoundOrForbidden - the target record is missing or belongs to
	// another owner. Deliberately one signal for both, so existence of other
	// owners' records never leaks.
	ErrNotFoundOrForbidden = errors.New("record not found")

	// ErrPersistence - the datastore failed. Backend detail is logged, never
	// returned.
	ErrPersistence = errors.New("storage failure")

	// ErrInvalidIdentifier - a malformed id reached an identifier column.
	// Kept distinct from ErrPersistence because it indicates the
	// internal-id/external-id mixup bug class rather than an outage.
	ErrInvalidIdentifier = fmt.Errorf("%w: malformed identifier", ErrPersistence)
)

// Validationf wraps ErrValidation with a caller-presentable reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
