// Package seed runs the catalog seeder the way the seed command is
// configured: straight into PostgreSQL when a DSN is set, otherwise through
// the backend REST API with the service role key.
package seed

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/learnquest/internal/client/backend"
	pricing "github.com/dmitrijs2005/learnquest/internal/client/catalog"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/catalog"
	"github.com/dmitrijs2005/learnquest/internal/client/services"
	"github.com/dmitrijs2005/learnquest/internal/config"
	"github.com/dmitrijs2005/learnquest/internal/logging"
)

// Seams for the PostgreSQL path.
var (
	openPostgres  = catalog.OpenPostgres
	runMigrations = catalog.RunMigrations
)

// Run builds the catalog from the defaults and the optional ids file and
// seeds it. An unconfigured catalog fails before any connection is made.
func Run(ctx context.Context, cfg *config.Config, logger logging.Logger) (services.SeedReport, error) {
	c, err := buildCatalog(cfg.CatalogFile)
	if err != nil {
		return services.SeedReport{}, err
	}
	if err := c.Validate(); err != nil {
		return services.SeedReport{}, err
	}

	store, closeFn, err := openStore(ctx, cfg, logger)
	if err != nil {
		return services.SeedReport{}, err
	}
	defer closeFn()

	return services.NewSeeder(c, store, logger).Seed(ctx)
}

func buildCatalog(path string) (*pricing.Catalog, error) {
	c := pricing.Default()
	if path == "" {
		return c, nil
	}
	o, err := pricing.LoadOverrides(path)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(o); err != nil {
		return nil, err
	}
	return c, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (catalog.Store, func(), error) {
	if cfg.DatabaseDSN != "" {
		db, err := openPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := runMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info(ctx, "seeding through postgres")
		return catalog.NewPostgresStore(db), func() { _ = db.Close() }, nil
	}

	admin, err := backend.New(cfg.BackendURL, cfg.AnonKey,
		backend.WithServiceRoleKey(cfg.ServiceRoleKey),
		backend.WithLogger(logger),
	).Admin()
	if err != nil {
		return nil, nil, fmt.Errorf("seeding over REST: %w", err)
	}
	logger.Info(ctx, "seeding through the REST API", "backend", cfg.BackendURL)
	return catalog.NewRESTRepository(admin), func() {}, nil
}
