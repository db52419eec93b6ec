package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/learnquest/internal/flagx"
)

// JsonConfig is the on-disk shape of the JSON config file. Only keys that
// are present override the values already in Config.
type JsonConfig struct {
	BackendURL       *string `json:"backend_url"`
	AnonKey          *string `json:"anon_key"`
	ServiceRoleKey   *string `json:"service_role_key"`
	SiteURL          *string `json:"site_url"`
	LocalDBPath      *string `json:"local_db"`
	DatabaseDSN      *string `json:"database_dsn"`
	CatalogFile      *string `json:"catalog_file"`
	StorageEndpoint  *string `json:"storage_endpoint"`
	StorageRegion    *string `json:"storage_region"`
	StorageBucket    *string `json:"storage_bucket"`
	StorageAccessKey *string `json:"storage_access_key"`
	StorageSecretKey *string `json:"storage_secret_key"`
	TransactionLimit *int    `json:"transaction_limit"`
	LogLevel         *string `json:"log_level"`
}

// parseJson overlays config with the JSON file named by -c/-config.
// A missing flag is a no-op; an unreadable or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set := func(src *string, dst *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(c.BackendURL, &config.BackendURL)
	set(c.AnonKey, &config.AnonKey)
	set(c.ServiceRoleKey, &config.ServiceRoleKey)
	set(c.SiteURL, &config.SiteURL)
	set(c.LocalDBPath, &config.LocalDBPath)
	set(c.DatabaseDSN, &config.DatabaseDSN)
	set(c.CatalogFile, &config.CatalogFile)
	set(c.StorageEndpoint, &config.StorageEndpoint)
	set(c.StorageRegion, &config.StorageRegion)
	set(c.StorageBucket, &config.StorageBucket)
	set(c.StorageAccessKey, &config.StorageAccessKey)
	set(c.StorageSecretKey, &config.StorageSecretKey)
	set(c.LogLevel, &config.LogLevel)

	if c.TransactionLimit != nil {
		config.TransactionLimit = *c.TransactionLimit
	}
}
