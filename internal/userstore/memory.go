package userstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/insurehub/insurehub/internal/domain"
)

// MemoryStore is an in-memory Store used in tests. All operations run under a
// single mutex, which gives the same no-lost-update guarantee the SQL stores
// get from their atomic append statements.
type MemoryStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*domain.User
	byEmail map[string]uuid.UUID
	plans   map[uuid.UUID][]domain.PurchasedPlan
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]uuid.UUID),
		plans:   make(map[uuid.UUID][]domain.PurchasedPlan),
	}
}

// CreateUser inserts a new user
func (s *MemoryStore) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return domain.ErrUserAlreadyExists
	}

	u := *user
	s.users[u.ID] = &u
	s.byEmail[u.Email] = u.ID
	s.plans[u.ID] = nil
	return nil
}

// GetUserByEmail retrieves a user by email
func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

// FindPurchasedPlans returns a copy of the user's purchase history.
func (s *MemoryStore) FindPurchasedPlans(ctx context.Context, userID uuid.UUID) ([]domain.PurchasedPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}

	plans := make([]domain.PurchasedPlan, len(s.plans[userID]))
	copy(plans, s.plans[userID])
	return plans, nil
}

// AppendPurchasedPlan appends a plan snapshot to the user's history.
func (s *MemoryStore) AppendPurchasedPlan(ctx context.Context, userID uuid.UUID, plan domain.PurchasedPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	s.plans[userID] = append(s.plans[userID], plan)
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
