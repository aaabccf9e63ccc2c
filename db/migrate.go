// file: db/migrate.go

package db

import (
	"fmt"
	"go-auth-api/config"
	"go-auth-api/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending schema migrations at startup.
func RunMigrations(migrationPath string) error {
	cfg := config.AppConfig.Database

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	mig, err := migrate.New(migrationPath, connStr)
	if err != nil {
		return fmt.Errorf("cannot create migrate instance: %w", err)
	}
	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrate up: %w", err)
	}

	logger.Log.Info("Database migrations applied")
	return nil
}
