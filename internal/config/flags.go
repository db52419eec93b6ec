package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/learnquest/internal/flagx"
)

var knownFlags = []string{
	"-u", "-k", "-s", "-w", "-l", "-d", "-catalog",
	"-e", "-g", "-b", "-a", "-p", "-n", "-v",
}

// parseFlags overrides config from command-line flags:
//
//	-u string     backend base URL
//	-k string     anon (public) API key
//	-s string     service-role API key
//	-w string     site URL used for checkout redirects
//	-l string     local SQLite database path
//	-d string     PostgreSQL DSN for direct catalog seeding
//	-catalog      JSON file with processor ids for the catalog
//	-e string     object storage endpoint
//	-g string     object storage region
//	-b string     object storage bucket
//	-a string     object storage access key
//	-p string     object storage secret key
//	-n int        default transaction page size
//	-v string     log level
//
// Only these flags are looked at, so -c/-env and positional arguments
// can coexist on the same command line.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.BackendURL, "u", config.BackendURL, "backend base URL")
	fs.StringVar(&config.AnonKey, "k", config.AnonKey, "anon API key")
	fs.StringVar(&config.ServiceRoleKey, "s", config.ServiceRoleKey, "service-role API key")
	fs.StringVar(&config.SiteURL, "w", config.SiteURL, "site URL for checkout redirects")
	fs.StringVar(&config.LocalDBPath, "l", config.LocalDBPath, "local database path")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&config.CatalogFile, "catalog", config.CatalogFile, "catalog ids file")
	fs.StringVar(&config.StorageEndpoint, "e", config.StorageEndpoint, "object storage endpoint")
	fs.StringVar(&config.StorageRegion, "g", config.StorageRegion, "object storage region")
	fs.StringVar(&config.StorageBucket, "b", config.StorageBucket, "object storage bucket")
	fs.StringVar(&config.StorageAccessKey, "a", config.StorageAccessKey, "object storage access key")
	fs.StringVar(&config.StorageSecretKey, "p", config.StorageSecretKey, "object storage secret key")

	fs.IntVar(&config.TransactionLimit, "n", config.TransactionLimit, "transaction page size")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
