package models

// ProductTypeCoins marks stripe_products rows that are one-time coin packages.
const ProductTypeCoins = "coins"

// CoinPackage is a one-time purchasable bundle of coins (stripe_products row).
type CoinPackage struct {
	StripeProductID string `json:"stripe_product_id"`
	StripePriceID   string `json:"stripe_price_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Coins           int64  `json:"coin_amount"`
	PriceCents      int64  `json:"price_cents"`
	Currency        string `json:"currency"`
	ProductType     string `json:"product_type"`
	IsActive        bool   `json:"is_active"`
}

// PremiumPlan is a subscription entry unlocking feature flags (premium_plans row).
type PremiumPlan struct {
	StripeProductID string   `json:"stripe_product_id"`
	StripePriceID   string   `json:"stripe_price_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	PriceCents      int64    `json:"price_cents"`
	Currency        string   `json:"currency"`
	Interval        string   `json:"interval"`
	Features        []string `json:"features"`
	IsActive        bool     `json:"is_active"`
}
