package handlers

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// ContextKeyUserID carries the authenticated user's ID through the request
// context. Set by the router's auth wrapper.
const ContextKeyUserID contextKey = "user_id"

// UserID retrieves the authenticated user ID from context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return id, ok
}
