package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/learnquest/internal/client/backend"
	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/common"
)

const table = "users"

type RESTRepository struct {
	db backend.Tables
}

func NewRESTRepository(db backend.Tables) *RESTRepository {
	return &RESTRepository{db: db}
}

func (r *RESTRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var rows []models.User
	q := backend.NewQuery().Select("*").Eq("id", id).Limit(1)
	if err := r.db.Select(ctx, table, q, &rows); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound
	}
	return &rows[0], nil
}

// Create inserts the user and returns the stored row.
func (r *RESTRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var rows []models.User
	if err := r.db.Insert(ctx, table, user, &rows); err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.ID, err)
	}
	if len(rows) == 0 {
		return user, nil
	}
	return &rows[0], nil
}

func (r *RESTRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.Delete(ctx, table, backend.NewQuery().Eq("id", id)); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
