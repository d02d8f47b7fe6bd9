// Package testutil starts throwaway databases for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresEnv enables the container-backed suites when set to "1".
const PostgresEnv = "TASKS_TEST_POSTGRES"

// PostgresDB is a running Postgres container.
type PostgresDB struct {
	ConnStr   string
	container testcontainers.Container
}

// StartPostgres launches postgres:15 and returns its connection string. The test
// is skipped unless PostgresEnv is set, since it needs a Docker daemon.
func StartPostgres(t *testing.T) *PostgresDB {
	t.Helper()
	if os.Getenv(PostgresEnv) != "1" {
		t.Skipf("set %s=1 to run Postgres integration tests", PostgresEnv)
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "tasks",
			"POSTGRES_PASSWORD": "tasks",
			"POSTGRES_DB":       "tasks",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatal(err)
	}

	return &PostgresDB{
		ConnStr:   fmt.Sprintf("postgres://tasks:tasks@%s:%s/tasks?sslmode=disable", host, port.Port()),
		container: container,
	}
}
