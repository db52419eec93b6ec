// Package config loads runtime settings for the learnquest CLI and the
// catalog seeding tool.
//
// Sources, later ones taking precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file selected with -env (optional) and LEARNQUEST_* environment variables.
//  3. A JSON file selected with -c or -config (optional).
//  4. Command-line flags.
package config

// Config holds runtime settings.
//
// BackendURL, AnonKey and ServiceRoleKey address the hosted backend; the
// service-role key is only needed by admin operations (seeding over REST,
// account deletion). DatabaseDSN, when set, makes the seeder write to
// PostgreSQL directly. Storage* point at the S3-compatible object storage
// of the backend.
type Config struct {
	BackendURL       string
	AnonKey          string
	ServiceRoleKey   string
	SiteURL          string
	LocalDBPath      string
	DatabaseDSN      string
	CatalogFile      string
	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string
	TransactionLimit int
	LogLevel         string
}

// LoadDefaults populates Config with development defaults pointing at a
// locally running backend stack.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:54321"
	c.SiteURL = "http://localhost:3000"
	c.LocalDBPath = "learnquest.db"
	c.StorageRegion = "us-east-1"
	c.StorageBucket = "avatars"
	c.TransactionLimit = 50
	c.LogLevel = "info"
}

// StorageEnabled reports whether enough settings are present to talk to object storage.
func (c *Config) StorageEnabled() bool {
	return c.StorageEndpoint != "" && c.StorageAccessKey != "" && c.StorageSecretKey != ""
}

// LoadConfig builds a Config from defaults, environment, JSON and flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
