package models

import "time"

// Wallet is the per-user coin aggregate. The client only ever reads it.
type Wallet struct {
	UserID     string     `json:"user_id"`
	TotalCoins int64      `json:"total_coins"`
	SpentCoins int64      `json:"spent_coins"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// AvailableCoins is derived, never stored by the client.
func (w Wallet) AvailableCoins() int64 {
	return w.TotalCoins - w.SpentCoins
}

type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionSpend    TransactionType = "spend"
	TransactionRefund   TransactionType = "refund"
	TransactionBonus    TransactionType = "bonus"
)

// CoinTransaction is an immutable ledger entry of coin_transactions.
type CoinTransaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	ReferenceID *string         `json:"reference_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Badge is an achievement earned by a user.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url"`
	EarnedAt    time.Time `json:"earned_at"`
}
