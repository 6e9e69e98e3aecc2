package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

// PostgresRepository implements task storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a task row for its owner.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (user_id, text, completed, completed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Text, task.Completed, task.CompletedAt).
		Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// ListByUser returns all tasks owned by userID, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, text, completed, completed_at, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Task{}
	for rows.Next() {
		var item models.Task
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Text, &item.Completed,
			&item.CompletedAt, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the task matching both id and owner, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string, userID string) (*models.Task, error) {
	query := `
		SELECT id, user_id, text, completed, completed_at, created_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&task.ID, &task.UserID, &task.Text, &task.Completed,
		&task.CompletedAt, &task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// Update rewrites the mutable fields of the row matching (id, owner).
// A row owned by someone else matches nothing and yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		UPDATE tasks
		SET text = $3, completed = $4, completed_at = $5
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, text, completed, completed_at, created_at
	`
	updated := &models.Task{}
	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Text, task.Completed, task.CompletedAt).
		Scan(
			&updated.ID, &updated.UserID, &updated.Text, &updated.Completed,
			&updated.CompletedAt, &updated.CreatedAt,
		)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

// DeleteByID deletes the row matching (id, owner) and returns its snapshot,
// or common.ErrorNotFound. Delete and read-back happen in one statement.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string, userID string) (*models.Task, error) {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, text, completed, completed_at, created_at
	`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&task.ID, &task.UserID, &task.Text, &task.Completed,
		&task.CompletedAt, &task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}
