package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The purchased-plan history is owned by
// the user store and loaded through its own operation rather than carried on
// the struct.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
