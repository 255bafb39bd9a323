// Package tasks owns the task collection.
//
// At runtime the collection lives in an in-memory SQLite database, so it is
// shared by every screen for the lifetime of the process and starts over on
// restart.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/models"
)

// Repository describes CRUD operations over tasks. Lookups of unknown ids
// fail with common.ErrNotFound.
type Repository interface {
	// List returns every task ordered by id.
	List(ctx context.Context) ([]models.Task, error)

	GetByID(ctx context.Context, id int64) (*models.Task, error)

	// Create stores t under a freshly assigned id and returns the stored copy.
	// t.ID is ignored.
	Create(ctx context.Context, t *models.Task) (*models.Task, error)

	// Update overwrites every column of the task with t.ID.
	Update(ctx context.Context, t *models.Task) error

	Delete(ctx context.Context, id int64) error
}
