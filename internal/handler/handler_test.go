package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asadkovich/task-manager/internal/database"
	"github.com/asadkovich/task-manager/internal/middleware"
	"github.com/asadkovich/task-manager/internal/models"
	"github.com/asadkovich/task-manager/internal/repository"
	"github.com/asadkovich/task-manager/internal/service"
	"github.com/asadkovich/task-manager/pkg/auth"
)

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.OpenSQLite(name)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokenManager := auth.NewTokenManager("test-secret", 30*time.Minute)
	authService := service.NewAuthService(repository.NewUserRepository(db), tokenManager)
	taskService := service.NewTaskService(repository.NewTaskRepository(db))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(log,
		middleware.NewAuthenticator(authService),
		NewUserHandler(authService),
		NewTaskHandler(taskService),
	)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func registerAndLogin(t *testing.T, h http.Handler, login, password string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/user/create", "", map[string]string{
		"login":    login,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	form := url.Values{"username": {login}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	loginRec := httptest.NewRecorder()
	h.ServeHTTP(loginRec, req)
	require.Equal(t, http.StatusOK, loginRec.Code, loginRec.Body.String())

	var resp loginResponse
	decodeBody(t, loginRec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken
}

func createTask(t *testing.T, h http.Handler, token, title string) models.Task {
	t.Helper()

	rec := doJSON(t, h, http.MethodPut, "/task/create", token, map[string]string{
		"title":       title,
		"description": "desc",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var task models.Task
	decodeBody(t, rec, &task)
	return task
}

func TestHealth(t *testing.T) {
	h := setupTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateUser_Duplicate(t *testing.T) {
	h := setupTestRouter(t)

	body := map[string]string{"login": "alice", "password": "pw"}
	rec := doJSON(t, h, http.MethodPost, "/user/create", "", body)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/user/create", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errBody map[string]string
	decodeBody(t, rec, &errBody)
	assert.Equal(t, "duplicate_login", errBody["error"])
}

func TestLogin_BadCredentials(t *testing.T) {
	h := setupTestRouter(t)
	registerAndLogin(t, h, "alice", "pw")

	form := url.Values{"username": {"alice"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTaskRoutes_RequireAuth(t *testing.T) {
	h := setupTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/task/create"},
		{http.MethodPut, "/task/update"},
		{http.MethodDelete, "/task/delete"},
		{http.MethodPost, "/task/history"},
		{http.MethodPost, "/user/tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doJSON(t, h, tt.method, tt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestTaskLifecycle(t *testing.T) {
	h := setupTestRouter(t)
	token := registerAndLogin(t, h, "alice", "pw")

	task := createTask(t, h, token, "write report")
	assert.Equal(t, models.StatusNew, task.Status)

	// Update: prior state lands in history, new state is persisted.
	rec := doJSON(t, h, http.MethodPut, "/task/update", token, map[string]any{
		"task_id":     task.ID,
		"title":       "write final report",
		"description": "done deal",
		"status":      "finished",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Task
	decodeBody(t, rec, &updated)
	assert.Equal(t, "write final report", updated.Title)
	assert.Equal(t, models.StatusFinished, updated.Status)

	rec = doJSON(t, h, http.MethodPost, "/task/history", token, map[string]any{
		"task_id": task.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var history []models.Change
	decodeBody(t, rec, &history)
	require.Len(t, history, 1)
	assert.Equal(t, "write report", history[0].Title)
	assert.Equal(t, models.StatusNew, history[0].Status)

	// Delete, then the task is gone.
	rec = doJSON(t, h, http.MethodDelete, "/task/delete?task_id="+task.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/task/delete?task_id="+task.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTask_Validation(t *testing.T) {
	h := setupTestRouter(t)
	token := registerAndLogin(t, h, "alice", "pw")
	task := createTask(t, h, token, "x")

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			name: "invalid status",
			body: map[string]any{"task_id": task.ID, "title": "x", "status": "bogus"},
			want: http.StatusBadRequest,
		},
		{
			name: "empty title",
			body: map[string]any{"task_id": task.ID, "title": "", "status": "new"},
			want: http.StatusBadRequest,
		},
		{
			name: "case insensitive status accepted",
			body: map[string]any{"task_id": task.ID, "title": "x", "status": "In Progress"},
			want: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPut, "/task/update", token, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	h := setupTestRouter(t)
	token := registerAndLogin(t, h, "alice", "pw")

	rec := doJSON(t, h, http.MethodPut, "/task/update", token, map[string]any{
		"task_id": "00000000-0000-0000-0000-000000000001",
		"title":   "x",
		"status":  "new",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTasks_ScopedToOwner(t *testing.T) {
	h := setupTestRouter(t)
	aliceToken := registerAndLogin(t, h, "alice", "pw")
	bobToken := registerAndLogin(t, h, "bob", "pw")

	createTask(t, h, aliceToken, "alice task")
	createTask(t, h, bobToken, "bob task")

	rec := doJSON(t, h, http.MethodPost, "/user/tasks", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []models.Task
	decodeBody(t, rec, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, "alice task", tasks[0].Title)
}

func TestExpiredToken(t *testing.T) {
	h := setupTestRouter(t)
	registerAndLogin(t, h, "alice", "pw")

	// Mint an already-expired token with the same secret.
	expired := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := expired.Generate("alice")
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodPost, "/user/tasks", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
