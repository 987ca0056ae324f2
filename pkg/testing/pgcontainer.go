package testing

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const pgImage = "postgres:17.5"

// PGContainer is a throwaway PostgreSQL database for storage tests.
type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
}

// PGSetup prepares a freshly started database, typically by applying a schema.
type PGSetup func(ctx context.Context, pool *pgxpool.Pool) error

// NewPGContainer starts the container, runs setup against it when given and
// registers its termination with tb.
func NewPGContainer(ctx context.Context, tb testing.TB, setup PGSetup) *PGContainer {
	tb.Helper()

	pgContainer, err := postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase("segments_test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		tb.Fatalf("failed to start postgres container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			tb.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("failed to get postgres connection string: %v", err)
	}

	if setup != nil {
		pool, err := pgxpool.New(ctx, connStr)
		if err != nil {
			tb.Fatalf("failed to connect to postgres container: %v", err)
		}
		defer pool.Close()

		if err := setup(ctx, pool); err != nil {
			tb.Fatalf("failed to set up postgres container: %v", err)
		}
	}

	return &PGContainer{
		Container:  pgContainer,
		ConnString: connStr,
	}
}
