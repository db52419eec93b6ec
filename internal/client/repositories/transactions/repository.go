// Package transactions reads the append-only coin_transactions ledger.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

type Repository interface {
	// ListByUser returns at most limit entries, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.CoinTransaction, error)
	DeleteByUser(ctx context.Context, userID string) error
}
