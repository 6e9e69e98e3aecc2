// Package users declares the server-side repository contract for account
// records in persistent storage.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// Repository defines operations over user rows.
type Repository interface {
	// Create stores a new user and returns it with the DB-assigned ID.
	// A conflicting email yields common.ErrorEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by exact (case-sensitive) email match.
	// Implementations return common.ErrorNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks a user up by its ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
