package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"tasklist/internal/activity"
	"tasklist/internal/config"
	"tasklist/internal/httpmw"
	"tasklist/internal/task"
)

const serviceName = "tasklist"

type Options struct {
	Config   *config.Config
	Tasks    task.Repo
	Activity activity.Repo
	Logger   *log.Logger
}

// Seeder is implemented by repos that can be loaded with initial tasks.
type Seeder interface {
	Seed(ctx context.Context, tasks []task.Task) error
}

// NewTaskRepo builds the task store described by cfg, seeded when enabled.
func NewTaskRepo(ctx context.Context, cfg *config.Config) (*task.MemoryRepo, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	repo := task.NewMemoryRepo(cfg.IDPolicy())
	if cfg.Tasks.SeedEnabled() {
		if err := SeedTasks(ctx, repo); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func SeedTasks(ctx context.Context, repo Seeder) error {
	return repo.Seed(ctx, task.Seed())
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Tasks == nil {
		return nil, errors.New("task repo is required")
	}
	if opts.Activity == nil {
		opts.Activity = activity.NewMemoryRepo()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": serviceName,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		ts, err := opts.Tasks.List(r.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "task storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": serviceName,
			"tasks":   len(ts),
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	taskHandler := task.NewHandler(opts.Tasks)
	taskHandler.SetActivity(opts.Activity)
	taskHandler.SetLogger(opts.Logger)
	mux.HandleFunc("/api/tasks", taskHandler.TasksRoot)
	mux.HandleFunc("/api/tasks/", taskHandler.TasksSub)

	activityHandler := activity.NewHandler(opts.Activity)
	mux.HandleFunc("/api/activity", activityHandler.Root)

	rl := opts.Config.Server.RateLimit
	return httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
		httpmw.WithCORS(opts.Config.Server.CORSOrigin),
		httpmw.WithRateLimit(httpmw.NewLimiter(rl.RequestsPerSecond, rl.Burst)),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
