package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the data access operations for consent records and
// conversation summaries. All methods return explicit errors; deciding
// whether a failure degrades to an empty result is the caller's job.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetConsent retrieves a user's consent record. Returns nil, nil if
	// the user has no record.
	GetConsent(ctx context.Context, userID int64) (*UserConsent, error)

	// SaveConsent inserts or replaces a user's consent record.
	SaveConsent(ctx context.Context, userID int64, basic, full bool) error

	// DeleteUser removes a user's consent record. Dependent summaries are
	// removed by the schema's cascade rule.
	DeleteUser(ctx context.Context, userID int64) error

	// GetSummary retrieves the summary text for a conversation key.
	// Returns "", nil if no summary exists.
	GetSummary(ctx context.Context, key string) (string, error)

	// UpsertSummary inserts or replaces the summary for a conversation key.
	UpsertSummary(ctx context.Context, key string, userID int64, botID, summary string) error

	// RunMaintenance performs database maintenance tasks like VACUUM.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) GetConsent(ctx context.Context, userID int64) (*UserConsent, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var consent UserConsent
	query := `SELECT id, created_at, updated_at, basic_consent, full_consent FROM users WHERE id = ?`

	err := s.db.GetContext(ctx, &consent, query, userID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No consent record found", "user_id", userID)
		return nil, nil

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting consent record", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get consent for user %d: %w", userID, err)
	}

	return &consent, nil
}

func (s *sqlxStore) SaveConsent(ctx context.Context, userID int64, basic, full bool) error {
	now := time.Now().UTC()
	consent := UserConsent{
		UserID:       userID,
		CreatedAt:    now,
		UpdatedAt:    now,
		BasicConsent: basic,
		FullConsent:  full,
	}

	query := `
        INSERT INTO users (id, basic_consent, full_consent, created_at, updated_at)
        VALUES (:id, :basic_consent, :full_consent, :created_at, :updated_at)
        ON CONFLICT (id) DO UPDATE SET
            basic_consent = excluded.basic_consent,
            full_consent = excluded.full_consent,
            updated_at = excluded.updated_at;
    `

	if _, err := s.db.NamedExecContext(ctx, query, &consent); err != nil {
		s.logger.ErrorContext(ctx, "Error saving consent record", "user_id", userID, "error", err)
		return fmt.Errorf("failed to save consent for user %d: %w", userID, err)
	}

	s.logger.DebugContext(ctx, "Consent record saved", "user_id", userID, "basic", basic, "full", full)
	return nil
}

func (s *sqlxStore) DeleteUser(ctx context.Context, userID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting user record", "user_id", userID, "error", err)
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}

	// Deleting a user that never granted consent is a no-op, not an error.
	if affected, affErr := result.RowsAffected(); affErr == nil && affected == 0 {
		s.logger.DebugContext(ctx, "Delete requested for unknown user", "user_id", userID)
	}

	s.logger.InfoContext(ctx, "User record deleted with dependent summaries", "user_id", userID)
	return nil
}

func (s *sqlxStore) GetSummary(ctx context.Context, key string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var summary string
	query := `SELECT summary FROM summaries WHERE id = ?`

	err := s.db.GetContext(ctx, &summary, query, key)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No summary found", "key", key)
		return "", nil

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting summary", "key", key, "error", err)
		return "", fmt.Errorf("failed to get summary for key %s: %w", key, err)
	}

	return summary, nil
}

func (s *sqlxStore) UpsertSummary(ctx context.Context, key string, userID int64, botID, summary string) error {
	now := time.Now().UTC()
	row := Summary{
		Key:       key,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
		BotID:     botID,
		Summary:   summary,
	}

	query := `
        INSERT INTO summaries (id, user_id, bot_id, summary, created_at, updated_at)
        VALUES (:id, :user_id, :bot_id, :summary, :created_at, :updated_at)
        ON CONFLICT (id) DO UPDATE SET
            summary = excluded.summary,
            updated_at = excluded.updated_at;
    `

	if _, err := s.db.NamedExecContext(ctx, query, &row); err != nil {
		s.logger.ErrorContext(ctx, "Error upserting summary", "key", key, "user_id", userID, "error", err)
		return fmt.Errorf("failed to upsert summary for key %s: %w", key, err)
	}

	s.logger.DebugContext(ctx, "Summary upserted", "key", key, "user_id", userID)
	return nil
}

// RunMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}
