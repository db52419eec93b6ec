// Package catalog reads the storefront's coin packages and writes the
// pricing catalog (premium_plans and stripe_products) during seeding.
package catalog

import (
	"context"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

// Repository is the read side used by the storefront.
type Repository interface {
	// ListCoinPackages returns active coin packages, cheapest first.
	ListCoinPackages(ctx context.Context) ([]models.CoinPackage, error)
}

// Store is the write side used by the seeder. Both upserts are keyed by
// stripe_product_id and never delete rows.
type Store interface {
	UpsertPlans(ctx context.Context, plans []models.PremiumPlan) error
	UpsertProducts(ctx context.Context, products []models.CoinPackage) error
}

const (
	plansTable    = "premium_plans"
	productsTable = "stripe_products"
	conflictKey   = "stripe_product_id"
)
