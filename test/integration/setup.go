package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"jaggery-store/internal/database"
	"jaggery-store/internal/handler"
	"jaggery-store/internal/repository"
	"jaggery-store/internal/router"
	"jaggery-store/internal/seed"
	"jaggery-store/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestEnv bundles the running test stack: a PostgreSQL container, the
// connection pool and an HTTP test server exposing the full API.
type TestEnv struct {
	Pool   *pgxpool.Pool
	Server *httptest.Server
}

// SetupTestEnv starts a PostgreSQL container, applies the schema and wires
// the full application stack behind an httptest server.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	catalogService := service.NewCatalogService(productRepo, seed.NewStaticSource(), logger)
	checkoutService := service.NewCheckoutService(orderRepo, productRepo, logger)

	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	healthHandler := handler.NewHealthHandler(pool, logger)

	mux := router.New(catalogHandler, checkoutHandler, healthHandler, "", logger)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestEnv{
		Pool:   pool,
		Server: server,
	}
}

// CountOrders returns the number of persisted orders.
func (e *TestEnv) CountOrders(t *testing.T) int {
	t.Helper()

	var count int
	err := e.Pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM orders").Scan(&count)
	if err != nil {
		t.Fatalf("failed to count orders: %v", err)
	}
	return count
}
