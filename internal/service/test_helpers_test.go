package service

import (
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/asadkovich/task-manager/internal/database"
	"github.com/asadkovich/task-manager/internal/repository"
	"github.com/asadkovich/task-manager/pkg/auth"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.OpenSQLite(name)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func newTestAuthService(t *testing.T, db *sqlx.DB, tokenDuration time.Duration) *AuthService {
	t.Helper()

	tm := auth.NewTokenManager("test-secret", tokenDuration)
	return NewAuthService(repository.NewUserRepository(db), tm)
}

func newTestTaskService(db *sqlx.DB) *TaskService {
	return NewTaskService(repository.NewTaskRepository(db))
}
