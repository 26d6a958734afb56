package database

import (
	"errors"
	"fmt"

	"introboard/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// baselineVersion is the last migration known to leave the schema consistent.
const baselineVersion = 2026101701

// Migrations applies every pending migration from source (e.g. "file://migrations").
func Migrations(source, url string) error {
	if url == "" {
		return errors.New("DATABASE_URL not set")
	}

	migration, err := migrate.New(source, url)
	if err != nil {
		return fmt.Errorf("migration init error: %w", err)
	}
	defer func() { _, _ = migration.Close() }()

	if version, dirty, _ := migration.Version(); dirty {
		logger.Warn("database is dirty, forcing version", zap.Uint("version", version), zap.Int("forced", baselineVersion))
		if err := migration.Force(baselineVersion); err != nil {
			return fmt.Errorf("failed to force migration version: %w", err)
		}
	}

	if err := migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("migrations applied")
	return nil
}
