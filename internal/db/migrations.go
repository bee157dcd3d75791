/*-------------------------------------------------------------------------
 *
 * migrations.go
 *    Embedded schema migrations for ApprovalHub
 *
 * Applies SQL migrations from the embedded migrations directory using
 * golang-migrate with the iofs source.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/db/migrations.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/neurondb/ApprovalHub/internal/metrics"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

/* RunMigrations applies all pending schema migrations */
func RunMigrations(db *sqlx.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		metrics.WarnWithContext(context.Background(), "Database schema is dirty", map[string]interface{}{
			"version": version,
		})
	} else {
		metrics.InfoWithContext(context.Background(), "Database migrations applied", map[string]interface{}{
			"version": version,
		})
	}

	return nil
}
