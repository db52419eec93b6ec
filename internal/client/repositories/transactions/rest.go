package transactions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/learnquest/internal/client/backend"
	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

const table = "coin_transactions"

type RESTRepository struct {
	db backend.Tables
}

func NewRESTRepository(db backend.Tables) *RESTRepository {
	return &RESTRepository{db: db}
}

func (r *RESTRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.CoinTransaction, error) {
	q := backend.NewQuery().
		Select("*").
		Eq("user_id", userID).
		Order("created_at", false).
		Limit(limit)

	var rows []models.CoinTransaction
	if err := r.db.Select(ctx, table, q, &rows); err != nil {
		return nil, fmt.Errorf("list transactions of %s: %w", userID, err)
	}
	return rows, nil
}

func (r *RESTRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := r.db.Delete(ctx, table, backend.NewQuery().Eq("user_id", userID)); err != nil {
		return fmt.Errorf("delete transactions of %s: %w", userID, err)
	}
	return nil
}
