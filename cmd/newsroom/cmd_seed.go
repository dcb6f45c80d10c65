package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/HerbHall/newsroom/internal/fixtures"
)

func runSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	reset := fs.Bool("reset", false, "delete existing rows before loading")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	settings, logger := setup(*configPath)
	defer logger.Sync()

	ctx := context.Background()
	s := openStore(ctx, settings.Database, logger)
	defer s.Close()

	if *reset {
		if err := fixtures.Reset(ctx, s); err != nil {
			logger.Fatal("failed to reset database", zap.Error(err))
		}
	}

	d, err := fixtures.Load(ctx, s)
	if err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}
	logger.Info("database seeded",
		zap.Int("topics", len(d.Topics)),
		zap.Int("users", len(d.Users)),
		zap.Int("articles", len(d.Articles)),
		zap.Int("comments", len(d.Comments)),
	)
}
