// Package purchase records plan purchases against user accounts.
package purchase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/insurehub/insurehub/internal/domain"
)

// Store is the slice of the user store this service needs.
type Store interface {
	AppendPurchasedPlan(ctx context.Context, userID uuid.UUID, plan domain.PurchasedPlan) error
}

// EventPublisher announces completed purchases. Publishing is best-effort:
// a publish failure never fails the purchase it describes.
type EventPublisher interface {
	PublishPurchase(ctx context.Context, userID uuid.UUID, plan domain.PurchasedPlan) error
}

// Service handles the purchase operation
type Service struct {
	store  Store
	events EventPublisher // nil when events are disabled
}

// NewService creates a new purchase service
func NewService(store Store, events EventPublisher) *Service {
	return &Service{
		store:  store,
		events: events,
	}
}

// Buy validates and records a purchase. The caller supplies the plan snapshot;
// it is not revalidated against the catalog. Validation runs before any store
// call, so an invalid request never touches persistence.
func (s *Service) Buy(ctx context.Context, userID uuid.UUID, planID int, snapshot domain.PurchasedPlan) error {
	if planID <= 0 || snapshot.IsEmpty() {
		return domain.ErrInvalidInput
	}

	if err := s.store.AppendPurchasedPlan(ctx, userID, snapshot); err != nil {
		return fmt.Errorf("record purchase: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishPurchase(ctx, userID, snapshot); err != nil {
			slog.Warn("failed to publish purchase event",
				"error", err,
				"user_id", userID,
				"plan_id", planID,
			)
		}
	}

	return nil
}
