package userstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insurehub/insurehub/internal/domain"
)

// PostgresStore implements Store using PostgreSQL. The purchase history lives
// in a jsonb column on the users row; appends use the jsonb || operator so
// each purchase is one atomic statement.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ensure creates the users table if it does not exist.
func (s *PostgresStore) Ensure(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id              uuid PRIMARY KEY,
			email           text NOT NULL UNIQUE,
			name            text NOT NULL,
			password_hash   text NOT NULL,
			purchased_plans jsonb NOT NULL DEFAULT '[]'::jsonb,
			created_at      timestamptz NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure users table: %w", err)
	}
	return nil
}

// CreateUser inserts a new user
func (s *PostgresStore) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.pool.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrUserAlreadyExists
	}
	return err
}

// GetUserByEmail retrieves a user by email
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE email = $1
	`
	user := &domain.User{}
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindPurchasedPlans returns the user's purchase history, most recent last.
func (s *PostgresStore) FindPurchasedPlans(ctx context.Context, userID uuid.UUID) ([]domain.PurchasedPlan, error) {
	query := `SELECT purchased_plans FROM users WHERE id = $1`

	var raw []byte
	err := s.pool.QueryRow(ctx, query, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var plans []domain.PurchasedPlan
	if err := json.Unmarshal(raw, &plans); err != nil {
		return nil, fmt.Errorf("decode purchased plans: %w", err)
	}
	return plans, nil
}

// AppendPurchasedPlan appends a plan snapshot in a single UPDATE. Appending a
// jsonb object to a jsonb array with || pushes the object onto the end, so
// concurrent appends interleave without losing entries.
func (s *PostgresStore) AppendPurchasedPlan(ctx context.Context, userID uuid.UUID, plan domain.PurchasedPlan) error {
	snapshot, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan snapshot: %w", err)
	}

	query := `
		UPDATE users
		SET purchased_plans = purchased_plans || $2::jsonb
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query, userID, snapshot)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Ping verifies database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Ensure PostgresStore implements Store
var _ Store = (*PostgresStore)(nil)
