// Package catalog defines the pricing catalog the seeding tool writes: the
// premium plans and the one-time coin packages. Processor identifiers ship
// as placeholders and are supplied per deployment from a JSON file.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/common"
)

type Plan struct {
	Key string
	models.PremiumPlan
}

type Package struct {
	Key string
	models.CoinPackage
}

type Catalog struct {
	Plans    []Plan
	Packages []Package
}

var placeholderMarkers = []string{"replace", "placeholder", "xxx"}

// IsPlaceholder reports whether a processor id is empty or still carries a
// placeholder marker.
func IsPlaceholder(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return true
	}
	for _, m := range placeholderMarkers {
		if strings.Contains(id, m) {
			return true
		}
	}
	return false
}

func placeholder(kind, key string) string {
	return kind + "_REPLACE_" + key
}

// Default returns the built-in catalog with placeholder processor ids.
func Default() *Catalog {
	plan := func(key, name, desc string, cents int64, interval string, features []string) Plan {
		return Plan{Key: key, PremiumPlan: models.PremiumPlan{
			StripeProductID: placeholder("prod", key),
			StripePriceID:   placeholder("price", key),
			Name:            name,
			Description:     desc,
			PriceCents:      cents,
			Currency:        "usd",
			Interval:        interval,
			Features:        features,
			IsActive:        true,
		}}
	}
	pkg := func(key, name, desc string, coins, cents int64) Package {
		return Package{Key: key, CoinPackage: models.CoinPackage{
			StripeProductID: placeholder("prod", key),
			StripePriceID:   placeholder("price", key),
			Name:            name,
			Description:     desc,
			Coins:           coins,
			PriceCents:      cents,
			Currency:        "usd",
			ProductType:     models.ProductTypeCoins,
			IsActive:        true,
		}}
	}

	features := []string{"unlimited_courses", "ad_free", "offline_access", "priority_support", "exclusive_badges"}

	return &Catalog{
		Plans: []Plan{
			plan("premium_monthly", "Premium Monthly", "All premium features, billed monthly", 999, "month", features),
			plan("premium_yearly", "Premium Yearly", "All premium features, billed yearly", 9999, "year", features),
		},
		Packages: []Package{
			pkg("coins_100", "100 Coins", "Starter coin pack", 100, 999),
			pkg("coins_500", "500 Coins", "Popular coin pack", 500, 3999),
			pkg("coins_1000", "1000 Coins", "Best value coin pack", 1000, 6999),
		},
	}
}

// IDs are the processor identifiers of one catalog entry.
type IDs struct {
	ProductID string `json:"stripe_product_id"`
	PriceID   string `json:"stripe_price_id"`
}

// Overrides is the JSON document supplying processor ids by entry key:
//
//	{"plans": {"premium_monthly": {"stripe_product_id": "prod_..", "stripe_price_id": "price_.."}},
//	 "packages": {"coins_100": {...}}}
type Overrides struct {
	Plans    map[string]IDs `json:"plans"`
	Packages map[string]IDs `json:"packages"`
}

func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var o Overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return &o, nil
}

// Apply overlays ids onto matching entries. Unknown keys are an error so a
// typo cannot silently leave a placeholder behind.
func (c *Catalog) Apply(o *Overrides) error {
	if o == nil {
		return nil
	}

	var unknown []string
	for key, ids := range o.Plans {
		i := c.planIndex(key)
		if i < 0 {
			unknown = append(unknown, "plans."+key)
			continue
		}
		c.Plans[i].StripeProductID = ids.ProductID
		c.Plans[i].StripePriceID = ids.PriceID
	}
	for key, ids := range o.Packages {
		i := c.packageIndex(key)
		if i < 0 {
			unknown = append(unknown, "packages."+key)
			continue
		}
		c.Packages[i].StripeProductID = ids.ProductID
		c.Packages[i].StripePriceID = ids.PriceID
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown catalog entries %s", common.ErrInvalidInput, strings.Join(unknown, ", "))
	}
	return nil
}

func (c *Catalog) planIndex(key string) int {
	for i := range c.Plans {
		if c.Plans[i].Key == key {
			return i
		}
	}
	return -1
}

func (c *Catalog) packageIndex(key string) int {
	for i := range c.Packages {
		if c.Packages[i].Key == key {
			return i
		}
	}
	return -1
}

// UnconfiguredError lists the entries that still carry placeholder ids.
type UnconfiguredError struct {
	Entries []string
}

func (e *UnconfiguredError) Error() string {
	return fmt.Sprintf("%v: %s", common.ErrCatalogUnconfigured, strings.Join(e.Entries, ", "))
}

func (e *UnconfiguredError) Unwrap() error {
	return common.ErrCatalogUnconfigured
}

// Validate returns an *UnconfiguredError naming every entry whose product
// or price id is a placeholder, or a duplicated product id.
func (c *Catalog) Validate() error {
	var bad []string
	seen := map[string]string{}

	check := func(name, productID, priceID string) {
		if IsPlaceholder(productID) || IsPlaceholder(priceID) {
			bad = append(bad, name)
			return
		}
		if prev, ok := seen[productID]; ok {
			bad = append(bad, fmt.Sprintf("%s (product id also used by %s)", name, prev))
			return
		}
		seen[productID] = name
	}

	for _, p := range c.Plans {
		check("plans."+p.Key, p.StripeProductID, p.StripePriceID)
	}
	for _, p := range c.Packages {
		check("packages."+p.Key, p.StripeProductID, p.StripePriceID)
	}

	if len(bad) > 0 {
		return &UnconfiguredError{Entries: bad}
	}
	return nil
}

func (c *Catalog) PremiumPlans() []models.PremiumPlan {
	out := make([]models.PremiumPlan, len(c.Plans))
	for i, p := range c.Plans {
		out[i] = p.PremiumPlan
	}
	return out
}

func (c *Catalog) CoinPackages() []models.CoinPackage {
	out := make([]models.CoinPackage, len(c.Packages))
	for i, p := range c.Packages {
		out[i] = p.CoinPackage
	}
	return out
}

// IsUnconfigured is a convenience for errors.Is(err, common.ErrCatalogUnconfigured).
func IsUnconfigured(err error) bool {
	return errors.Is(err, common.ErrCatalogUnconfigured)
}
