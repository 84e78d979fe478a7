package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/castlebridge/expensetrackr/backend/internal/apperr"
	"github.com/castlebridge/expensetrackr/backend/internal/model"
	"github.com/castlebridge/expensetrackr/backend/internal/store"
)

func TestEnsureOwnerUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewIdentityResolver(store.NewMockStore(ctrl))

	_, err := resolver.EnsureOwner(context.Background())
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestEnsureOwnerNoEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	resolver := NewIdentityResolver(mockStore)

	// No store calls allowed: nothing is created for an incomplete identity.
	_, err := resolver.EnsureOwner(testContextNoEmail("ext-1"))
	if !errors.Is(err, apperr.ErrIdentityIncomplete) {
		t.Errorf("err = %v, want ErrIdentityIncomplete", err)
	}
}

func TestEnsureOwnerCreatesOnFirstSight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	resolver := NewIdentityResolver(mockStore)

	mockStore.EXPECT().
		GetOwnerByExternalID(gomock.Any(), "ext-1").
		Return(nil, store.ErrNotFound)
	mockStore.EXPECT().
		CreateOwner(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, owner *model.Owner) error {
			if owner.ExternalID != "ext-1" {
				t.Errorf("ExternalID = %q, want ext-1", owner.ExternalID)
			}
			if owner.Email != "ext-1@test.local" {
				t.Errorf("Email = %q", owner.Email)
			}
			if owner.ID == "" || owner.ID == owner.ExternalID {
				t.Errorf("internal id %q must be generated, not the external id", owner.ID)
			}
			return nil
		})

	owner, err := resolver.EnsureOwner(testContextWithUser("ext-1"))
	if err != nil {
		t.Fatalf("EnsureOwner failed: %v", err)
	}
	if owner.ExternalID != "ext-1" {
		t.Errorf("ExternalID = %q", owner.ExternalID)
	}
}

func TestEnsureOwnerIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	resolver := NewIdentityResolver(mockStore)

	existing := &model.Owner{ID: "11111111-1111-4111-8111-111111111111", ExternalID: "ext-1"}
	mockStore.EXPECT().
		GetOwnerByExternalID(gomock.Any(), "ext-1").
		Return(existing, nil).
		Times(2)

	for i := 0; i < 2; i++ {
		owner, err := resolver.EnsureOwner(testContextWithUser("ext-1"))
		if err != nil {
			t.Fatalf("EnsureOwner failed: %v", err)
		}
		if owner.ID != existing.ID {
			t.Errorf("ID = %q, want %q", owner.ID, existing.ID)
		}
	}
}

func TestEnsureOwnerLostCreateRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	resolver := NewIdentityResolver(mockStore)

	winner := &model.Owner{ID: "22222222-2222-4222-8222-222222222222", ExternalID: "ext-1"}
	mockStore.EXPECT().
		GetOwnerByExternalID(gomock.Any(), "ext-1").
		Return(nil, store.ErrNotFound)
	mockStore.EXPECT().
		CreateOwner(gomock.Any(), gomock.Any()).
		Return(errors.New("owner already exists: ext-1"))
	mockStore.EXPECT().
		GetOwnerByExternalID(gomock.Any(), "ext-1").
		Return(winner, nil)

	owner, err := resolver.EnsureOwner(testContextWithUser("ext-1"))
	if err != nil {
		t.Fatalf("EnsureOwner failed: %v", err)
	}
	if owner.ID != winner.ID {
		t.Errorf("ID = %q, want the concurrently created row", owner.ID)
	}
}

func TestEnsureOwnerStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	resolver := NewIdentityResolver(mockStore)

	mockStore.EXPECT().
		GetOwnerByExternalID(gomock.Any(), "ext-1").
		Return(nil, errors.New("connection refused"))

	_, err := resolver.EnsureOwner(testContextWithUser("ext-1"))
	if !errors.Is(err, apperr.ErrPersistence) {
		t.Errorf("err = %v, want ErrPersistence", err)
	}
	if errors.Is(err, apperr.ErrInvalidIdentifier) {
		t.Errorf("generic failure must not classify as invalid identifier")
	}
}
