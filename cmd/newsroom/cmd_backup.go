package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/HerbHall/newsroom/internal/backup"
)

func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file, included in the archive")
	output := fs.String("output", "", "output file path (default: newsroom-backup-{timestamp}.tar.gz)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	settings, _ := setup(*configPath)
	if settings.Database.Driver != "sqlite" {
		fmt.Fprintf(os.Stderr, "backup supports sqlite only, database.driver is %q\n", settings.Database.Driver)
		os.Exit(1)
	}

	if *output == "" {
		*output = fmt.Sprintf("newsroom-backup-%s.tar.gz", time.Now().Format("20060102-150405"))
	}

	if _, err := backup.Backup(context.Background(), settings.Database.DSN, *configPath, *output); err != nil {
		fmt.Fprintf(os.Stderr, "backup failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Backup created: %s\n", *output)
}

func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	input := fs.String("input", "", "backup archive to restore (required)")
	dataDir := fs.String("data-dir", ".", "target directory for restored files")
	force := fs.Bool("force", false, "overwrite existing files")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "error: --input is required")
		fs.Usage()
		os.Exit(1)
	}

	m, err := backup.Restore(context.Background(), *input, *dataDir, *force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "restore failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Restore complete: %s (created %s by %s) restored to %s\n",
		m.Database, m.CreatedAt.Format(time.RFC3339), m.Version, *dataDir)
}
