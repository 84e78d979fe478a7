package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/castlebridge/expensetrackr/backend/internal/model"
)

// MemoryStore implements Store with in-memory storage. Used for local
// development and tests.
type MemoryStore struct {
	mu sync.RWMutex

	owners  map[string]*model.Owner         // keyed by internal id
	records map[string]*model.ExpenseRecord // keyed by record id
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		owners:  make(map[string]*model.Owner),
		records: make(map[string]*model.ExpenseRecord),
	}
}

func (m *MemoryStore) CreateOwner(ctx context.Context, owner *model.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	if err := checkID("owner id", owner.ID); err != nil {
		return err
	}

	// Uniqueness on the external id mirrors the unique constraint the
	// persistent backends enforce.
	for _, existing := range m.owners {
		if existing.ExternalID == owner.ExternalID {
			return errAlreadyExists("owner", owner.ExternalID)
		}
	}

	m.owners[owner.ID] = owner
	return nil
}

func (m *MemoryStore) GetOwnerByExternalID(ctx context.Context, externalID string) (*model.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, owner := range m.owners {
		if owner.ExternalID == externalID {
			return owner, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateRecord(ctx context.Context, record *model.ExpenseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if err := checkID("record id", record.ID); err != nil {
		return err
	}
	if err := checkID("owner id", record.OwnerID); err != nil {
		return err
	}

	m.records[record.ID] = record
	return nil
}

func (m *MemoryStore) ListRecords(ctx context.Context, ownerID string, limit int) ([]*model.ExpenseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.recordsOf(ownerID)
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (m *MemoryStore) ListAllRecords(ctx context.Context, ownerID string) ([]*model.ExpenseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.recordsOf(ownerID)
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (m *MemoryStore) ListRecentRecords(ctx context.Context, ownerID string, since time.Time, limit int) ([]*model.ExpenseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []*model.ExpenseRecord
	for _, r := range m.records {
		if r.OwnerID == ownerID && !r.CreatedAt.Before(since) {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (m *MemoryStore) DeleteRecord(ctx context.Context, ownerID, recordID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[recordID]
	if !ok || record.OwnerID != ownerID {
		return ErrNotFound
	}

	delete(m.records, recordID)
	return nil
}

func (m *MemoryStore) recordsOf(ownerID string) []*model.ExpenseRecord {
	var records []*model.ExpenseRecord
	for _, r := range m.records {
		if r.OwnerID == ownerID {
			records = append(records, r)
		}
	}
	return records
}
