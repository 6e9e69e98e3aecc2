package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskvault/internal/dbx"
)

// PostgresRepository implements session storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add inserts a session row for userID.
func (r *PostgresRepository) Add(ctx context.Context, userID string, access string, token string) error {
	query := `
		INSERT INTO sessions (user_id, access, token)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, access, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Exists checks for the exact (user, access, token) row.
func (r *PostgresRepository) Exists(ctx context.Context, userID string, access string, token string) (bool, error) {
	query := `
		SELECT 1
		FROM sessions
		WHERE user_id = $1 AND access = $2 AND token = $3
	`
	var one int
	err := r.db.QueryRowContext(ctx, query, userID, access, token).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

// Delete removes the matching session row; absent rows are ignored.
func (r *PostgresRepository) Delete(ctx context.Context, userID string, token string) error {
	query := `
		DELETE FROM sessions
		WHERE user_id = $1 AND token = $2
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
