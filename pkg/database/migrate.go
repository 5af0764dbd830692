package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsLockKey = "lolstats_migrations_lock"

// RunMigrations applies all pending migrations to the database.
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	// Advisory locks belong to a session, so lock and unlock on the same connection.
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("could not get a connection for the migration lock: %w", err)
	}
	defer conn.Close()

	// Acquire an advisory lock to prevent concurrent migrations between the api and the scheduler.
	var lockAcquired bool
	err = conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock(hashtext($1))", migrationsLockKey).Scan(&lockAcquired)
	if err != nil {
		return err
	}

	if !lockAcquired {
		return nil
	}

	upErr := m.Up()

	var lockReleased bool
	err = conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock(hashtext($1))", migrationsLockKey).Scan(&lockReleased)

	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", upErr)
	}

	if err != nil || !lockReleased {
		return fmt.Errorf("could not release advisory lock: %v", err)
	}

	return nil
}
