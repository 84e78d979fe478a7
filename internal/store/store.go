package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/castlebridge/expensetrackr/backend/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

var (
	// ErrNotFound is returned when the requested row does not exist, or when
	// it exists but belongs to a different owner. Backends never distinguish
	// the two.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned when a malformed identifier would be written
	// to an identifier column. Surfaced distinctly because it indicates an
	// external-id/internal-id mixup in the caller rather than a backend
	// failure.
	ErrInvalidID = errors.New("invalid identifier")
)

// Store defines the interface for all database operations used by the service.
type Store interface {
	// Owner operations
	CreateOwner(ctx context.Context, owner *model.Owner) error
	GetOwnerByExternalID(ctx context.Context, externalID string) (*model.Owner, error)

	// Record operations. All reads and the delete are scoped to ownerID.
	CreateRecord(ctx context.Context, record *model.ExpenseRecord) error
	ListRecords(ctx context.Context, ownerID string, limit int) ([]*model.ExpenseRecord, error)
	ListAllRecords(ctx context.Context, ownerID string) ([]*model.ExpenseRecord, error)
	ListRecentRecords(ctx context.Context, ownerID string, since time.Time, limit int) ([]*model.ExpenseRecord, error)
	DeleteRecord(ctx context.Context, ownerID, recordID string) error
}

// errAlreadyExists reports a uniqueness violation. Callers that want
// create-if-missing semantics re-read after seeing it.
func errAlreadyExists(kind, key string) error {
	return fmt.Errorf("%s already exists: %s", kind, key)
}

// checkID verifies that an id destined for an identifier column is a UUID.
// Catches the bug class where the raw external provider id is written where
// the internal owner UUID belongs.
func checkID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s %q", ErrInvalidID, kind, id)
	}
	return nil
}
