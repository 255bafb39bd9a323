// Package users owns the user collection of the mock backend.
//
// The collection is seeded from an embedded JSON fixture and mutated in
// memory only; nothing written here survives a restart.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/models"
)

// Repository is the user collection. Returned users are copies; mutate them
// and call Update to write changes back.
type Repository interface {
	// GetByEmail matches the email exactly (case-sensitive).
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// Create assigns the next id (current maximum + 1) and appends the user.
	// It fails with common.ErrEmailTaken when the email is in use.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	Update(ctx context.Context, user *models.User) error
}
