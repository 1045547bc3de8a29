// internal/handler/task_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/asadkovich/task-manager/internal/middleware"
	"github.com/asadkovich/task-manager/internal/models"
	"github.com/asadkovich/task-manager/internal/service"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
	}
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	FinishTime  *time.Time `json:"finish_time"`
}

// Create inserts a new task owned by the acting user. Status and creation
// time are assigned server-side; a client-supplied status is ignored.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", "could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid_request", "invalid json body", http.StatusBadRequest)
		return
	}

	task, err := h.tasks.Create(r.Context(), user.ID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		FinishTime:  req.FinishTime,
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	respondJSON(w, task, http.StatusCreated)
}

type updateTaskRequest struct {
	TaskID      uuid.UUID  `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	FinishTime  *time.Time `json:"finish_time"`
}

// Update overwrites a task's fields. The previous state is snapshotted
// into the task's history before the new fields become visible.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid_request", "invalid json body", http.StatusBadRequest)
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		writeErr(w, err)
		return
	}

	task, err := h.tasks.Update(r.Context(), req.TaskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		FinishTime:  req.FinishTime,
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	respondJSON(w, task, http.StatusOK)
}

// Delete removes a task and all its history entries.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("task_id"))
	if err != nil {
		respondError(w, "invalid_request", "invalid task_id", http.StatusBadRequest)
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}

	respondJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

type historyRequest struct {
	TaskID uuid.UUID `json:"task_id"`
}

// History returns the task's recorded snapshots, oldest first.
func (h *TaskHandler) History(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid_request", "invalid json body", http.StatusBadRequest)
		return
	}

	changes, err := h.tasks.History(r.Context(), req.TaskID)
	if err != nil {
		writeErr(w, err)
		return
	}

	respondJSON(w, changes, http.StatusOK)
}

// List returns all tasks owned by the acting user.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", "could not validate credentials", http.StatusUnauthorized)
		return
	}

	tasks, err := h.tasks.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeErr(w, err)
		return
	}

	respondJSON(w, tasks, http.StatusOK)
}
