package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/fieldkeep/fieldkeep/internal/config"
	"github.com/fieldkeep/fieldkeep/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// SetupTestDB starts a throwaway Postgres container, applies all migrations
// and returns an open connection. Container and connection are torn down
// through t.Cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	dbName := "fieldkeep_test"
	dbUser := "test_fieldkeep"
	dbPassword := "test_fieldkeep"

	container, err := postgres.Run(
		ctx, "postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			log.Errorf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	cfg := config.Database{
		Host:    host,
		Port:    port.Int(),
		User:    dbUser,
		Pass:    dbPassword,
		Name:    dbName,
		SSLMode: "disable",
	}

	if err := database.Migrate(cfg); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
