package serverapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/config"
	"tasklist/internal/task"
)

func TestNewHandler_RequiresDeps(t *testing.T) {
	_, err := NewHandler(Options{})
	assert.Error(t, err)

	_, err = NewHandler(Options{Config: config.Default()})
	assert.Error(t, err)
}

func TestNewTaskRepo_Seed(t *testing.T) {
	ctx := context.Background()

	repo, err := NewTaskRepo(ctx, config.Default())
	require.NoError(t, err)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	off := false
	cfg := config.Default()
	cfg.Tasks.Seed = &off
	cfg.Tasks.IDPolicy = string(task.IDLength)
	repo, err = NewTaskRepo(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, task.IDLength, repo.Policy())
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNewHandler_RateLimited(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit = config.RateLimit{RequestsPerSecond: 0.001, Burst: 1}

	h, err := NewHandler(Options{Config: cfg, Tasks: task.NewMemoryRepo(task.IDSequential)})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
