package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/learnquest/internal/buildinfo"
	pricing "github.com/dmitrijs2005/learnquest/internal/client/catalog"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/dmitrijs2005/learnquest/internal/config"
	"github.com/dmitrijs2005/learnquest/internal/logging"
	"github.com/dmitrijs2005/learnquest/internal/seed"
)

// Exit codes.
const (
	exitFailure      = 1
	exitUnconfigured = 2
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	report, err := seed.Run(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "seeding failed", "error", err)
		if errors.Is(err, common.ErrCatalogUnconfigured) {
			var ue *pricing.UnconfiguredError
			if errors.As(err, &ue) {
				for _, e := range ue.Entries {
					fmt.Fprintln(os.Stderr, "  unconfigured:", e)
				}
			}
			fmt.Fprintln(os.Stderr, "Set the processor ids with -catalog <file> and run again.")
			os.Exit(exitUnconfigured)
		}
		os.Exit(exitFailure)
	}

	logger.Info(ctx, "catalog seeded", "plans", report.Plans, "products", report.Products)
}
