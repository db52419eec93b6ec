package config

import (
	"os"
	"strconv"

	"github.com/dmitrijs2005/learnquest/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "LEARNQUEST_"

// parseEnv loads the optional dotenv file given with -env (existing
// environment variables win over the file) and then copies every set
// LEARNQUEST_* variable into config. Unparsable numbers are ignored.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	str("BACKEND_URL", &config.BackendURL)
	str("ANON_KEY", &config.AnonKey)
	str("SERVICE_ROLE_KEY", &config.ServiceRoleKey)
	str("SITE_URL", &config.SiteURL)
	str("LOCAL_DB", &config.LocalDBPath)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("CATALOG_FILE", &config.CatalogFile)
	str("STORAGE_ENDPOINT", &config.StorageEndpoint)
	str("STORAGE_REGION", &config.StorageRegion)
	str("STORAGE_BUCKET", &config.StorageBucket)
	str("STORAGE_ACCESS_KEY", &config.StorageAccessKey)
	str("STORAGE_SECRET_KEY", &config.StorageSecretKey)
	str("LOG_LEVEL", &config.LogLevel)

	if v, ok := os.LookupEnv(envPrefix + "TRANSACTION_LIMIT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.TransactionLimit = n
		}
	}
}
