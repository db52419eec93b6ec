package catalog

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/learnquest/internal/client/backend"
	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

type RESTRepository struct {
	db backend.Tables
}

func NewRESTRepository(db backend.Tables) *RESTRepository {
	return &RESTRepository{db: db}
}

func (r *RESTRepository) ListCoinPackages(ctx context.Context) ([]models.CoinPackage, error) {
	q := backend.NewQuery().
		Select("*").
		Eq("product_type", models.ProductTypeCoins).
		Eq("is_active", true).
		Order("price_cents", true)

	var rows []models.CoinPackage
	if err := r.db.Select(ctx, productsTable, q, &rows); err != nil {
		return nil, fmt.Errorf("list coin packages: %w", err)
	}
	return rows, nil
}

func (r *RESTRepository) UpsertPlans(ctx context.Context, plans []models.PremiumPlan) error {
	if len(plans) == 0 {
		return nil
	}
	if err := r.db.Upsert(ctx, plansTable, conflictKey, plans); err != nil {
		return fmt.Errorf("upsert plans: %w", err)
	}
	return nil
}

func (r *RESTRepository) UpsertProducts(ctx context.Context, products []models.CoinPackage) error {
	if len(products) == 0 {
		return nil
	}
	if err := r.db.Upsert(ctx, productsTable, conflictKey, products); err != nil {
		return fmt.Errorf("upsert products: %w", err)
	}
	return nil
}
