// internal/service/task_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/asadkovich/task-manager/internal/models"
	"github.com/asadkovich/task-manager/internal/repository"
)

type TaskService struct {
	tasks *repository.TaskRepository
}

func NewTaskService(tasks *repository.TaskRepository) *TaskService {
	return &TaskService{
		tasks: tasks,
	}
}

// CreateTaskInput carries client-supplied fields for a new task. The id,
// status and creation time are assigned server-side.
type CreateTaskInput struct {
	Title       string
	Description string
	FinishTime  *time.Time
}

// UpdateTaskInput carries the full replacement state for a task. Omitted
// optional fields clear their stored values (overwrite, not patch).
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      models.Status
	FinishTime  *time.Time
}

// Create validates the input and persists a new task owned by ownerID.
// Every task starts in status "new" regardless of client input.
func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*models.Task, error) {
	if err := models.ValidateTask(input.Title, models.StatusNew); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Status:       models.StatusNew,
		CreationTime: time.Now().UTC(),
		FinishTime:   input.FinishTime,
		UserID:       ownerID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies new fields to an existing task. The stored state is
// snapshotted into the change log before the overwrite becomes visible;
// both writes commit atomically in the repository.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	// Absent task wins over invalid input: no partial work either way.
	if _, err := s.tasks.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := models.ValidateTask(input.Title, input.Status); err != nil {
		return nil, err
	}

	return s.tasks.Update(ctx, id, repository.TaskUpdateInput{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		FinishTime:  input.FinishTime,
	})
}

// Delete removes a task and, through the cascade, its change log.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tasks.Delete(ctx, id)
}

// ListByOwner returns all tasks owned by the given user.
func (s *TaskService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Task, error) {
	return s.tasks.ListByUser(ctx, ownerID)
}

// History returns the task's recorded snapshots, oldest first.
//
// TODO: history is not scoped to the requesting user; decide whether
// /task/history should return 404 for tasks owned by someone else.
func (s *TaskService) History(ctx context.Context, taskID uuid.UUID) ([]models.Change, error) {
	return s.tasks.History(ctx, taskID)
}
