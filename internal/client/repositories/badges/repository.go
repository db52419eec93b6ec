// Package badges reads the achievements a user has earned (user_badges
// joined with badges).
package badges

import (
	"context"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Badge, error)
	DeleteByUser(ctx context.Context, userID string) error
}
