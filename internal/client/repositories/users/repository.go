// Package users reads and writes the users table.
package users

import (
	"context"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

type Repository interface {
	// GetByID returns common.ErrNotFound when no row matches.
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
