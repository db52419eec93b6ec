package wallets

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/learnquest/internal/client/backend"
	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

const table = "user_wallets"

type RESTRepository struct {
	db backend.Tables
}

func NewRESTRepository(db backend.Tables) *RESTRepository {
	return &RESTRepository{db: db}
}

func (r *RESTRepository) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	var rows []models.Wallet
	q := backend.NewQuery().Select("*").Eq("user_id", userID).Limit(1)
	if err := r.db.Select(ctx, table, q, &rows); err != nil {
		return nil, fmt.Errorf("get wallet of %s: %w", userID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *RESTRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := r.db.Delete(ctx, table, backend.NewQuery().Eq("user_id", userID)); err != nil {
		return fmt.Errorf("delete wallet of %s: %w", userID, err)
	}
	return nil
}
