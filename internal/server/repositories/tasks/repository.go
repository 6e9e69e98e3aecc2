// Package tasks provides owner-scoped persistence for task records. Every
// id-bearing query filters by both task id and owner id: a row that belongs
// to another user is reported exactly like a row that does not exist.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// Repository defines owner-scoped task operations. All "not there or not
// yours" outcomes surface as common.ErrorNotFound.
type Repository interface {
	// Create stores a task and returns it with the DB-assigned ID.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// ListByUser returns all tasks owned by userID.
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)

	// GetByID returns the task only when it exists and is owned by userID.
	GetByID(ctx context.Context, id string, userID string) (*models.Task, error)

	// Update rewrites the mutable fields of the task matching (task.ID,
	// task.UserID) and returns the stored row.
	Update(ctx context.Context, task *models.Task) (*models.Task, error)

	// DeleteByID deletes the task matching (id, userID) and returns the
	// deleted snapshot.
	DeleteByID(ctx context.Context, id string, userID string) (*models.Task, error)
}
