package sessions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/learnquest/internal/client/backend"
	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

const table = "user_sessions"

type RESTRepository struct {
	db backend.Tables
}

func NewRESTRepository(db backend.Tables) *RESTRepository {
	return &RESTRepository{db: db}
}

func (r *RESTRepository) Create(ctx context.Context, s *models.Session) error {
	if err := r.db.Insert(ctx, table, s, nil); err != nil {
		return fmt.Errorf("create session for %s: %w", s.UserID, err)
	}
	return nil
}

func (r *RESTRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := r.db.Delete(ctx, table, backend.NewQuery().Eq("user_id", userID)); err != nil {
		return fmt.Errorf("delete sessions of %s: %w", userID, err)
	}
	return nil
}
