// internal/repository/task_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/asadkovich/task-manager/internal/models"
)

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// TaskUpdateInput carries the fields applied by Update. Semantics are
// overwrite, not patch: every stored field is replaced, so an omitted
// Description or FinishTime clears the stored value.
type TaskUpdateInput struct {
	Title       string
	Description string
	Status      models.Status
	FinishTime  *time.Time
}

func (r *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	const q = `
		INSERT INTO tasks (id, title, description, status, creation_time, finish_time, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(q),
		t.ID, t.Title, t.Description, t.Status, t.CreationTime, t.FinishTime, t.UserID)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	const q = `
		SELECT id, title, description, status, creation_time, finish_time, user_id
		FROM tasks WHERE id = ?`

	var t models.Task
	if err := r.db.GetContext(ctx, &t, r.db.Rebind(q), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	const q = `
		SELECT id, title, description, status, creation_time, finish_time, user_id
		FROM tasks WHERE user_id = ?`

	tasks := []models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(q), userID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update overwrites a task's mutable fields after snapshotting the stored
// state into the changes log. Snapshot and overwrite run in one
// transaction: either both are visible or neither is, so the log never
// misses a prior state and never holds an orphan entry.
func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, input TaskUpdateInput) (*models.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	const getQ = `
		SELECT id, title, description, status, creation_time, finish_time, user_id
		FROM tasks WHERE id = ?`

	var current models.Task
	if err := tx.GetContext(ctx, &current, tx.Rebind(getQ), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task for update: %w", err)
	}

	if err := recordChange(ctx, tx, &current); err != nil {
		return nil, err
	}

	const updateQ = `
		UPDATE tasks SET title = ?, description = ?, status = ?, finish_time = ?
		WHERE id = ?`

	if _, err := tx.ExecContext(ctx, tx.Rebind(updateQ),
		input.Title, input.Description, input.Status, input.FinishTime, id); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	updated := current
	updated.Title = input.Title
	updated.Description = input.Description
	updated.Status = input.Status
	updated.FinishTime = input.FinishTime
	return &updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM tasks WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// History returns the task's change log in the order the snapshots were
// recorded, oldest first.
func (r *TaskRepository) History(ctx context.Context, taskID uuid.UUID) ([]models.Change, error) {
	const q = `
		SELECT id, title, description, status, creation_time, finish_time, task_id, recorded_at
		FROM changes WHERE task_id = ?
		ORDER BY recorded_at ASC`

	changes := []models.Change{}
	if err := r.db.SelectContext(ctx, &changes, r.db.Rebind(q), taskID); err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	return changes, nil
}

// recordChange appends an immutable snapshot of the task's persisted state
// to the changes log. It must run inside the update transaction and must
// see the state before any field of the update is applied.
func recordChange(ctx context.Context, tx *sqlx.Tx, t *models.Task) error {
	const q = `
		INSERT INTO changes (id, title, description, status, creation_time, finish_time, task_id, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := tx.ExecContext(ctx, tx.Rebind(q),
		uuid.New(), t.Title, t.Description, t.Status, t.CreationTime, t.FinishTime, t.ID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}
