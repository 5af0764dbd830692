package testutil

import (
	"fmt"
	"testing"
	"time"

	"lolstats/internal/testutil"
	"lolstats/pkg/database"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// NewTestConnection starts a postgres container with the full schema migrated.
// Skipped under -short or without docker.
func NewTestConnection(t *testing.T) *gorm.DB {
	t.Helper()

	host, port := testutil.StartContainer(t, tc.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	})

	dsn := fmt.Sprintf(
		"host=%s port=%s user=test password=test dbname=testdb sslmode=disable TimeZone=UTC",
		host, port,
	)

	db, err := database.NewConnection(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to the test database: %v", err)
	}

	// Run the migrations to replicate the full schema.
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to run the migrations: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}
