package service

import (
	"context"

	"github.com/castlebridge/expensetrackr/backend/internal/auth"
)

// testContextWithUser creates a context with authenticated user claims for testing
func testContextWithUser(userID string) context.Context {
	return auth.WithUserClaims(context.Background(), &auth.UserClaims{
		UID:         userID,
		Email:       userID + "@test.local",
		DisplayName: "Test User",
		Verified:    true,
	})
}

// testContextNoEmail creates authenticated claims without an email hint
func testContextNoEmail(userID string) context.Context {
	return auth.WithUserClaims(context.Background(), &auth.UserClaims{
		UID: userID,
	})
}
