package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/castlebridge/expensetrackr/backend/internal/apperr"
	"github.com/castlebridge/expensetrackr/backend/internal/auth"
	"github.com/castlebridge/expensetrackr/backend/internal/model"
	"github.com/castlebridge/expensetrackr/backend/internal/store"
)

// IdentityResolver maps the external provider identity on a request to the
// local Owner row, creating it on first sight.
type IdentityResolver struct {
	store store.Store
}

// NewIdentityResolver creates a new IdentityResolver.
func NewIdentityResolver(s store.Store) *IdentityResolver {
	return &IdentityResolver{store: s}
}

// EnsureOwner returns the Owner for the authenticated identity, creating it
// if missing. Idempotent: repeated calls for the same external id resolve to
// the same row and never create duplicates. An identity without an email
// fails with IdentityIncomplete and creates nothing.
func (r *IdentityResolver) EnsureOwner(ctx context.Context) (*model.Owner, error) {
	claims, err := auth.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, apperr.ErrIdentityIncomplete
	}

	owner, err := r.store.GetOwnerByExternalID(ctx, claims.UID)
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, storeFailure("look up owner", err)
	}

	owner = &model.Owner{
		ID:         uuid.New().String(),
		ExternalID: claims.UID,
		Email:      claims.Email,
		Name:       claims.DisplayName,
		AvatarURL:  claims.Picture,
		CreatedAt:  time.Now().UTC(),
	}

	if err := r.store.CreateOwner(ctx, owner); err != nil {
		// A concurrent first sign-in may have won the create; the unique
		// constraint on the external id guarantees a single row either way.
		if existing, lookupErr := r.store.GetOwnerByExternalID(ctx, claims.UID); lookupErr == nil {
			return existing, nil
		}
		return nil, storeFailure("create owner", err)
	}

	log.Printf("[Identity] created owner %s for external id %s", owner.ID, owner.ExternalID)
	return owner, nil
}

// storeFailure logs the backend detail and returns the coarse taxonomy error
// the caller is allowed to see.
func storeFailure(op string, err error) error {
	log.Printf("[Store] failed to %s: %v", op, err)
	if errors.Is(err, store.ErrInvalidID) {
		return apperr.ErrInvalidIdentifier
	}
	return apperr.ErrPersistence
}
