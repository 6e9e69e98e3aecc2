// This file implements TaskService: task operations parameterized by the
// authenticated owner. Callers never supply an owner; it always comes from
// the resolved identity.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/config"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskPatch carries the mutable fields of an update request. Nil fields are
// left unchanged.
type TaskPatch struct {
	Text      *string
	Completed *bool
}

// TaskService provides owner-scoped access to task records.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService using repositories and server config.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create stores a task owned by userID. The owner comes from the caller's
// identity only; any owner field in the payload is ignored upstream.
func (s *TaskService) Create(ctx context.Context, userID string, text string) (*models.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", common.ErrorValidation)
	}

	repo := s.repomanager.Tasks(s.db)
	task, err := repo.Create(ctx, &models.Task{UserID: userID, Text: text})
	if err != nil {
		return nil, common.ErrorInternal
	}
	return task, nil
}

// List returns all tasks owned by userID.
func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	tasks, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return tasks, nil
}

// GetByID returns the task only when it exists and belongs to userID.
// Malformed ids and other users' tasks both yield common.ErrorNotFound,
// without touching the repository in the malformed case.
func (s *TaskService) GetByID(ctx context.Context, id string, userID string) (*models.Task, error) {
	if !validTaskID(id) {
		return nil, common.ErrorNotFound
	}

	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return task, nil
}

// Update applies patch to the task matching (id, userID) and returns the
// stored row. Flipping completed to true stamps CompletedAt; flipping it to
// false clears it. Scoping matches GetByID.
func (s *TaskService) Update(ctx context.Context, id string, userID string, patch TaskPatch) (*models.Task, error) {
	if !validTaskID(id) {
		return nil, common.ErrorNotFound
	}
	if patch.Text != nil && strings.TrimSpace(*patch.Text) == "" {
		return nil, fmt.Errorf("%w: empty text", common.ErrorValidation)
	}

	var updated *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := repo.GetByID(ctx, id, userID)
		if err != nil {
			return err
		}

		if patch.Text != nil {
			task.Text = *patch.Text
		}
		if patch.Completed != nil {
			task.Completed = *patch.Completed
			if task.Completed {
				now := time.Now()
				task.CompletedAt = &now
			} else {
				task.CompletedAt = nil
			}
		}

		updated, err = repo.Update(ctx, task)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return updated, nil
}

// Delete removes the task matching (id, userID) and returns the deleted
// snapshot. Scoping matches GetByID.
func (s *TaskService) Delete(ctx context.Context, id string, userID string) (*models.Task, error) {
	if !validTaskID(id) {
		return nil, common.ErrorNotFound
	}

	task, err := s.repomanager.Tasks(s.db).DeleteByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return task, nil
}

// validTaskID rejects ids that cannot be task keys before they reach the
// database, with the same outcome as a missing record.
func validTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
