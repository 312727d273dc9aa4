// Command migrate applies or reverts the MySQL schema migrations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"invoicing/config"
	"invoicing/infrastructure/persistence/mysql"
	"invoicing/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var down bool
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.BoolVar(&down, "down", false, "Revert the most recent migration")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := mysql.FromAppConfig(cfg.Database, cfg.Log.Level).Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if down {
		return mysql.Rollback(ctx, db)
	}
	return mysql.Migrate(ctx, db)
}
