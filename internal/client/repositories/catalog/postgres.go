package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/dbx"
	catalogmigrations "github.com/dmitrijs2005/learnquest/internal/migrations/catalog"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresDB is what the PostgreSQL store needs from *sql.DB.
type PostgresDB interface {
	dbx.DBTX
	dbx.Beginner
}

// PostgresStore writes the catalog straight into PostgreSQL, one
// transaction per batch.
type PostgresStore struct {
	db PostgresDB
}

func NewPostgresStore(db PostgresDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects with the pgx driver and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations creates the catalog tables when missing.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(catalogmigrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("catalog migrations: %w", err)
	}
	return nil
}

const upsertPlanQuery = `
INSERT INTO premium_plans
  (stripe_product_id, stripe_price_id, name, description, price_cents, currency, interval, features, is_active, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, now())
ON CONFLICT (stripe_product_id) DO UPDATE SET
  stripe_price_id = EXCLUDED.stripe_price_id,
  name            = EXCLUDED.name,
  description     = EXCLUDED.description,
  price_cents     = EXCLUDED.price_cents,
  currency        = EXCLUDED.currency,
  interval        = EXCLUDED.interval,
  features        = EXCLUDED.features,
  is_active       = EXCLUDED.is_active,
  updated_at      = now()
`

const upsertProductQuery = `
INSERT INTO stripe_products
  (stripe_product_id, stripe_price_id, name, description, coin_amount, price_cents, currency, product_type, is_active, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
ON CONFLICT (stripe_product_id) DO UPDATE SET
  stripe_price_id = EXCLUDED.stripe_price_id,
  name            = EXCLUDED.name,
  description     = EXCLUDED.description,
  coin_amount     = EXCLUDED.coin_amount,
  price_cents     = EXCLUDED.price_cents,
  currency        = EXCLUDED.currency,
  product_type    = EXCLUDED.product_type,
  is_active       = EXCLUDED.is_active,
  updated_at      = now()
`

func (s *PostgresStore) UpsertPlans(ctx context.Context, plans []models.PremiumPlan) error {
	if len(plans) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, p := range plans {
			features := p.Features
			if features == nil {
				features = []string{}
			}
			f, err := json.Marshal(features)
			if err != nil {
				return fmt.Errorf("encode features of %s: %w", p.StripeProductID, err)
			}
			_, err = tx.ExecContext(ctx, upsertPlanQuery,
				p.StripeProductID, p.StripePriceID, p.Name, p.Description,
				p.PriceCents, p.Currency, p.Interval, string(f), p.IsActive)
			if err != nil {
				return fmt.Errorf("db error: upsert plan %s: %w", p.StripeProductID, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) UpsertProducts(ctx context.Context, products []models.CoinPackage) error {
	if len(products) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, p := range products {
			_, err := tx.ExecContext(ctx, upsertProductQuery,
				p.StripeProductID, p.StripePriceID, p.Name, p.Description,
				p.Coins, p.PriceCents, p.Currency, p.ProductType, p.IsActive)
			if err != nil {
				return fmt.Errorf("db error: upsert product %s: %w", p.StripeProductID, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) ListCoinPackages(ctx context.Context) ([]models.CoinPackage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT stripe_product_id, stripe_price_id, name, description, coin_amount,
		       price_cents, currency, product_type, is_active
		FROM stripe_products
		WHERE product_type = $1 AND is_active
		ORDER BY price_cents ASC
	`, models.ProductTypeCoins)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.CoinPackage
	for rows.Next() {
		var p models.CoinPackage
		if err := rows.Scan(&p.StripeProductID, &p.StripePriceID, &p.Name, &p.Description,
			&p.Coins, &p.PriceCents, &p.Currency, &p.ProductType, &p.IsActive); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
