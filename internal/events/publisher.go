package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/insurehub/insurehub/internal/domain"
)

// PurchaseEvent is the wire form of a completed purchase.
type PurchaseEvent struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	PlanID     int       `json:"plan_id"`
	Provider   string    `json:"provider"`
	Type       string    `json:"type"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher publishes purchase events to the queue
type Publisher struct {
	conn *Connection
}

// NewPublisher creates a new event publisher
func NewPublisher(conn *Connection) *Publisher {
	return &Publisher{conn: conn}
}

// PublishPurchase publishes a purchase event for a recorded purchase.
func (p *Publisher) PublishPurchase(ctx context.Context, userID uuid.UUID, plan domain.PurchasedPlan) error {
	event := &PurchaseEvent{
		ID:         uuid.New(),
		UserID:     userID,
		PlanID:     plan.ID,
		Provider:   plan.Provider,
		Type:       plan.Type,
		Price:      plan.Price,
		OccurredAt: time.Now(),
	}

	if err := p.conn.PublishJSON(ctx, PurchaseQueueName, event); err != nil {
		return fmt.Errorf("failed to publish purchase event: %w", err)
	}

	slog.Info("published purchase event",
		"event_id", event.ID,
		"user_id", event.UserID,
		"plan_id", event.PlanID,
	)

	return nil
}
