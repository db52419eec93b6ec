// Package wallets reads the user_wallets table. Balances are maintained by
// the backend; the client never writes them.
package wallets

import (
	"context"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

type Repository interface {
	// GetByUserID returns (nil, nil) when the user has no wallet yet.
	GetByUserID(ctx context.Context, userID string) (*models.Wallet, error)
	DeleteByUser(ctx context.Context, userID string) error
}
