package purchase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/insurehub/insurehub/internal/domain"
	"github.com/insurehub/insurehub/internal/userstore"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events int
	fail   bool
}

func (p *recordingPublisher) PublishPurchase(ctx context.Context, userID uuid.UUID, plan domain.PurchasedPlan) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.events++
	return nil
}

func newUser(t *testing.T, store *userstore.MemoryStore) uuid.UUID {
	t.Helper()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		Name:         "A",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	return user.ID
}

func TestBuy(t *testing.T) {
	store := userstore.NewMemoryStore()
	pub := &recordingPublisher{}
	svc := NewService(store, pub)
	ctx := context.Background()
	userID := newUser(t, store)

	snapshot := domain.PurchasedPlan{ID: 1, Provider: "SecureLife", Type: "Life", Price: 45}
	if err := svc.Buy(ctx, userID, 1, snapshot); err != nil {
		t.Fatalf("Buy() error: %v", err)
	}

	plans, err := store.FindPurchasedPlans(ctx, userID)
	if err != nil {
		t.Fatalf("FindPurchasedPlans() error: %v", err)
	}
	if len(plans) != 1 || plans[0].Provider != "SecureLife" {
		t.Errorf("purchase history = %+v; want the recorded snapshot", plans)
	}
	if pub.events != 1 {
		t.Errorf("published %d events; want 1", pub.events)
	}
}

func TestBuy_Validation(t *testing.T) {
	store := userstore.NewMemoryStore()
	svc := NewService(store, nil)
	ctx := context.Background()
	userID := newUser(t, store)

	tests := []struct {
		name     string
		planID   int
		snapshot domain.PurchasedPlan
	}{
		{"zero plan id", 0, domain.PurchasedPlan{Provider: "P", Type: "Health"}},
		{"negative plan id", -1, domain.PurchasedPlan{Provider: "P", Type: "Health"}},
		{"empty snapshot", 1, domain.PurchasedPlan{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Buy(ctx, userID, tt.planID, tt.snapshot); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("Buy() error = %v; want ErrInvalidInput", err)
			}

			// Validation failures must not touch the store.
			plans, _ := store.FindPurchasedPlans(ctx, userID)
			if len(plans) != 0 {
				t.Errorf("store mutated by invalid request: %d plans", len(plans))
			}
		})
	}
}

func TestBuy_UnknownUser(t *testing.T) {
	svc := NewService(userstore.NewMemoryStore(), nil)

	err := svc.Buy(context.Background(), uuid.New(), 1, domain.PurchasedPlan{ID: 1, Provider: "P", Type: "Auto"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Buy() error = %v; want wrapped ErrUserNotFound", err)
	}
}

func TestBuy_PublishFailureDoesNotFailPurchase(t *testing.T) {
	store := userstore.NewMemoryStore()
	pub := &recordingPublisher{fail: true}
	svc := NewService(store, pub)
	ctx := context.Background()
	userID := newUser(t, store)

	if err := svc.Buy(ctx, userID, 1, domain.PurchasedPlan{ID: 1, Provider: "P", Type: "Auto"}); err != nil {
		t.Errorf("Buy() error = %v; want nil despite publish failure", err)
	}

	plans, _ := store.FindPurchasedPlans(ctx, userID)
	if len(plans) != 1 {
		t.Errorf("purchase not recorded: %d plans", len(plans))
	}
}

func TestBuy_ConcurrentPurchasesAllRetained(t *testing.T) {
	store := userstore.NewMemoryStore()
	svc := NewService(store, nil)
	ctx := context.Background()
	userID := newUser(t, store)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snapshot := domain.PurchasedPlan{ID: i + 1, Provider: "P", Type: "Auto", Price: 10}
			if err := svc.Buy(ctx, userID, i+1, snapshot); err != nil {
				t.Errorf("Buy(%d) error: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	plans, err := store.FindPurchasedPlans(ctx, userID)
	if err != nil {
		t.Fatalf("FindPurchasedPlans() error: %v", err)
	}
	if len(plans) != n {
		t.Errorf("purchase history has %d entries; want %d", len(plans), n)
	}
}
