package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"
)

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	settings, logger := setup(*configPath)
	defer logger.Sync()

	s := openStore(context.Background(), settings.Database, logger)
	defer s.Close()

	logger.Info("database schema is up to date",
		zap.String("driver", settings.Database.Driver),
		zap.String("dialect", s.Dialect().String()),
	)
}
