//go:build integration

package userstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/insurehub/insurehub/internal/domain"
	"github.com/insurehub/insurehub/internal/userstore"
)

// setupPostgres starts a throwaway Postgres container and returns a connected
// store.
func setupPostgres(t *testing.T) (*userstore.PostgresStore, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "insurehub",
				"POSTGRES_PASSWORD": "insurehub",
				"POSTGRES_DB":       "insurehub",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start Postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://insurehub:insurehub@%s:%s/insurehub?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to connect: %v", err)
	}

	store := userstore.NewPostgresStore(pool)
	if err := store.Ensure(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		t.Fatalf("failed to ensure schema: %v", err)
	}

	cleanup := func() {
		pool.Close()
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return store, cleanup
}

func TestIntegration_PostgresStore_RoundTrip(t *testing.T) {
	store, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		Name:         "A",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	got, err := store.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetUserByEmail() ID = %v; want %v", got.ID, user.ID)
	}

	plans, err := store.FindPurchasedPlans(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindPurchasedPlans() error: %v", err)
	}
	if len(plans) != 0 {
		t.Fatalf("new user has %d plans; want 0", len(plans))
	}

	plan := domain.PurchasedPlan{
		ID:       1,
		Provider: "SecureLife",
		Type:     "Life",
		Price:    45.50,
		Benefits: []string{"Accidental Death"},
	}
	if err := store.AppendPurchasedPlan(ctx, user.ID, plan); err != nil {
		t.Fatalf("AppendPurchasedPlan() error: %v", err)
	}

	plans, err = store.FindPurchasedPlans(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindPurchasedPlans() error: %v", err)
	}
	if len(plans) != 1 || plans[0].Provider != "SecureLife" {
		t.Errorf("FindPurchasedPlans() = %+v; want the appended snapshot", plans)
	}
}

func TestIntegration_PostgresStore_ConcurrentAppends(t *testing.T) {
	store, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "c@x.com",
		Name:         "C",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			plan := domain.PurchasedPlan{ID: i, Provider: "Provider", Type: "Auto", Price: 50}
			if err := store.AppendPurchasedPlan(ctx, user.ID, plan); err != nil {
				t.Errorf("AppendPurchasedPlan(%d) error: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	plans, err := store.FindPurchasedPlans(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindPurchasedPlans() error: %v", err)
	}
	if len(plans) != n {
		t.Errorf("FindPurchasedPlans() returned %d plans; want %d (no lost updates)", len(plans), n)
	}
}
