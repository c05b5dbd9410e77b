package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"tasklist/internal/activity"
	"tasklist/internal/config"
	"tasklist/internal/serverapp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], log.Default(), nil); err != nil {
		log.Fatal(err)
	}
}

// run serves until ctx is cancelled. ready, if set, receives the bound
// address once the listener is open.
func run(ctx context.Context, args []string, logger *log.Logger, ready chan<- string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	configPath := fs.String("config", "tasklist.yml", "path to YAML config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	tasks, err := serverapp.NewTaskRepo(ctx, cfg)
	if err != nil {
		return err
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:   cfg,
		Tasks:    tasks,
		Activity: activity.NewMemoryRepo(),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:  handler,
		ErrorLog: logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Printf("Server running on port %s (id policy: %s)", ln.Addr(), tasks.Policy())
		if ready != nil {
			ready <- ln.Addr().String()
		}
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Printf("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
