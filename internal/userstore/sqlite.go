package userstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/insurehub/insurehub/internal/domain"
)

// SQLiteStore implements Store using an embedded SQLite database. Intended for
// local development and debug mode; the purchase history is a JSON array
// appended with json_insert, which runs as one atomic statement under
// SQLite's single-writer model.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates) a SQLite database with WAL mode and foreign
// keys enabled.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Single-writer SQLite
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db}, nil
}

// Ensure creates the users table if it does not exist.
func (s *SQLiteStore) Ensure(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id              TEXT PRIMARY KEY,
			email           TEXT NOT NULL UNIQUE,
			name            TEXT NOT NULL,
			password_hash   TEXT NOT NULL,
			purchased_plans TEXT NOT NULL DEFAULT '[]',
			created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure users table: %w", err)
	}
	return nil
}

// CreateUser inserts a new user
func (s *SQLiteStore) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID.String(), user.Email, user.Name, user.PasswordHash, user.CreatedAt,
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return domain.ErrUserAlreadyExists
	}
	return err
}

// GetUserByEmail retrieves a user by email
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE email = ?
	`
	var (
		user domain.User
		id   string
	)
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&id, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("decode user id: %w", err)
	}
	return &user, nil
}

// FindPurchasedPlans returns the user's purchase history, most recent last.
func (s *SQLiteStore) FindPurchasedPlans(ctx context.Context, userID uuid.UUID) ([]domain.PurchasedPlan, error) {
	query := `SELECT purchased_plans FROM users WHERE id = ?`

	var raw []byte
	err := s.db.QueryRowContext(ctx, query, userID.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
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

// AppendPurchasedPlan appends a plan snapshot in a single UPDATE using
// json_insert's '$[#]' path, which targets the slot past the end of the array.
func (s *SQLiteStore) AppendPurchasedPlan(ctx context.Context, userID uuid.UUID, plan domain.PurchasedPlan) error {
	snapshot, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan snapshot: %w", err)
	}

	query := `
		UPDATE users
		SET purchased_plans = json_insert(purchased_plans, '$[#]', json(?))
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query, string(snapshot), userID.String())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Ping verifies database connectivity
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
