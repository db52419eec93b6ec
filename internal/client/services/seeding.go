package services

import (
	"context"
	"fmt"

	pricing "github.com/dmitrijs2005/learnquest/internal/client/catalog"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/catalog"
	"github.com/dmitrijs2005/learnquest/internal/logging"
)

// SeedReport counts the rows upserted by one run.
type SeedReport struct {
	Plans    int
	Products int
}

// Seeder writes the pricing catalog. It refuses to write anything while an
// entry still carries a placeholder processor id, and it never deletes.
type Seeder interface {
	Seed(ctx context.Context) (SeedReport, error)
}

type seeder struct {
	catalog *pricing.Catalog
	store   catalog.Store
	logger  logging.Logger
}

func NewSeeder(c *pricing.Catalog, store catalog.Store, logger logging.Logger) Seeder {
	return &seeder{catalog: c, store: store, logger: logger.With("service", "seeder")}
}

func (s *seeder) Seed(ctx context.Context) (SeedReport, error) {
	var report SeedReport

	if err := s.catalog.Validate(); err != nil {
		s.logger.Error(ctx, "catalog not configured, nothing written", "error", err)
		return report, err
	}

	plans := s.catalog.PremiumPlans()
	if err := s.store.UpsertPlans(ctx, plans); err != nil {
		return report, fmt.Errorf("seed plans: %w", err)
	}
	report.Plans = len(plans)

	products := s.catalog.CoinPackages()
	if err := s.store.UpsertProducts(ctx, products); err != nil {
		return report, fmt.Errorf("seed products: %w", err)
	}
	report.Products = len(products)

	s.logger.Info(ctx, "catalog seeded", "plans", report.Plans, "products", report.Products)
	return report, nil
}
