package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/newsroom/internal/api"
	"github.com/HerbHall/newsroom/internal/config"
	"github.com/HerbHall/newsroom/internal/server"
	"github.com/HerbHall/newsroom/internal/services"
	"github.com/HerbHall/newsroom/internal/store"
	"github.com/HerbHall/newsroom/internal/version"
	"github.com/HerbHall/newsroom/pkg/catalog"
)

func main() {
	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		runServe(args)
	case "migrate":
		runMigrate(args)
	case "seed":
		runSeed(args)
	case "backup":
		runBackup(args)
	case "restore":
		runRestore(args)
	case "version":
		fmt.Println(version.Info())
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want serve, migrate, seed, backup, restore or version)\n", cmd)
		os.Exit(2)
	}
}

// setup loads configuration and builds the logger shared by every command.
func setup(configPath string) (config.Settings, *zap.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	settings, err := cfg.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if settings.Log.Development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		os.Exit(1)
	}
	return settings, logger
}

// openStore connects to the configured database and brings the schema up
// to date.
func openStore(ctx context.Context, db config.Database, logger *zap.Logger) *store.Store {
	s, err := store.Open(ctx, db.Driver, db.DSN)
	if err != nil {
		logger.Fatal("failed to open database", zap.String("driver", db.Driver), zap.Error(err))
	}
	if err := services.Migrate(ctx, s); err != nil {
		s.Close()
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	return s
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	settings, logger := setup(*configPath)
	defer logger.Sync()

	logger.Info("Newsroom server starting", zap.String("version", version.Short()))

	ctx := context.Background()
	s := openStore(ctx, settings.Database, logger)
	defer s.Close()

	db := s.DB()
	handler := api.NewHandler(api.Repositories{
		Articles: services.NewSQLArticleRepository(db),
		Comments: services.NewSQLCommentRepository(db),
		Topics:   services.NewSQLTopicRepository(db),
		Users:    services.NewSQLUserRepository(db),
	}, catalog.NewCatalog(), logger.Named("api"))

	srv := server.New(server.Options{
		Addr:           settings.Server.Addr(),
		ReadTimeout:    settings.Server.ReadTimeout,
		WriteTimeout:   settings.Server.WriteTimeout,
		RequestTimeout: settings.Server.RequestTimeout,
		RateLimit:      settings.Server.RateLimit,
		RateBurst:      settings.Server.RateBurst,
		TrustedProxies: settings.Server.TrustedProxies,
		Metrics:        settings.Metrics.Enabled,
	}, logger.Named("server"), handler)

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("Newsroom server ready", zap.String("addr", settings.Server.Addr()))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("Newsroom server stopped")
}
