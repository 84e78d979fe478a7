package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/castlebridge/expensetrackr/backend/internal/model"
)

const (
	ownersCollection  = "users"
	recordsCollection = "records"
)

// FirestoreStore implements the Store interface using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{client: client}
}

// CreateOwner creates a new owner document keyed by the internal id.
// NOTE: Field names in Where/OrderBy must match Go struct field names
// (PascalCase) as that's how Firestore serializes plain structs.
func (s *FirestoreStore) CreateOwner(ctx context.Context, owner *model.Owner) error {
	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	if err := checkID("owner id", owner.ID); err != nil {
		return err
	}

	// Lookup-before-create stands in for the relational unique constraint on
	// the external id; concurrent first sign-ins are resolved by the caller
	// re-reading on conflict.
	if _, err := s.GetOwnerByExternalID(ctx, owner.ExternalID); err == nil {
		return errAlreadyExists("owner", owner.ExternalID)
	}

	_, err := s.client.Collection(ownersCollection).Doc(owner.ID).Set(ctx, owner)
	if err != nil {
		return fmt.Errorf("create owner: %w", err)
	}
	return nil
}

// GetOwnerByExternalID looks up an owner by the external provider id.
func (s *FirestoreStore) GetOwnerByExternalID(ctx context.Context, externalID string) (*model.Owner, error) {
	docs, err := s.client.Collection(ownersCollection).
		Where("ExternalID", "==", externalID).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}

	var owner model.Owner
	if err := docs[0].DataTo(&owner); err != nil {
		return nil, fmt.Errorf("failed to parse owner: %w", err)
	}
	return &owner, nil
}

// CreateRecord creates a new expense record document.
func (s *FirestoreStore) CreateRecord(ctx context.Context, record *model.ExpenseRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if err := checkID("record id", record.ID); err != nil {
		return err
	}
	if err := checkID("owner id", record.OwnerID); err != nil {
		return err
	}

	_, err := s.client.Collection(recordsCollection).Doc(record.ID).Set(ctx, record)
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// ListRecords lists an owner's records newest occurrence date first.
func (s *FirestoreStore) ListRecords(ctx context.Context, ownerID string, limit int) ([]*model.ExpenseRecord, error) {
	docs, err := s.client.Collection(recordsCollection).
		Where("OwnerID", "==", ownerID).
		OrderBy("Date", firestore.Desc).
		Limit(limit).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return parseRecords(docs)
}

// ListAllRecords lists every record of an owner.
func (s *FirestoreStore) ListAllRecords(ctx context.Context, ownerID string) ([]*model.ExpenseRecord, error) {
	docs, err := s.client.Collection(recordsCollection).
		Where("OwnerID", "==", ownerID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return parseRecords(docs)
}

// ListRecentRecords lists records created at or after since, newest first.
func (s *FirestoreStore) ListRecentRecords(ctx context.Context, ownerID string, since time.Time, limit int) ([]*model.ExpenseRecord, error) {
	docs, err := s.client.Collection(recordsCollection).
		Where("OwnerID", "==", ownerID).
		Where("CreatedAt", ">=", since).
		OrderBy("CreatedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list recent records: %w", err)
	}
	return parseRecords(docs)
}

// DeleteRecord deletes a record after verifying it belongs to ownerID.
// A missing record and a foreign record report the same ErrNotFound.
func (s *FirestoreStore) DeleteRecord(ctx context.Context, ownerID, recordID string) error {
	ref := s.client.Collection(recordsCollection).Doc(recordID)

	doc, err := ref.Get(ctx)
	if err != nil {
		return ErrNotFound
	}

	var record model.ExpenseRecord
	if err := doc.DataTo(&record); err != nil {
		return fmt.Errorf("failed to parse record: %w", err)
	}
	if record.OwnerID != ownerID {
		return ErrNotFound
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func parseRecords(docs []*firestore.DocumentSnapshot) ([]*model.ExpenseRecord, error) {
	var records []*model.ExpenseRecord
	for _, doc := range docs {
		var record model.ExpenseRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, fmt.Errorf("failed to parse record: %w", err)
		}
		records = append(records, &record)
	}
	return records, nil
}
