// Package sessions writes the user_sessions table.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	DeleteByUser(ctx context.Context, userID string) error
}
