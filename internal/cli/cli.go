// Package cli holds the start-up and shutdown steps shared by the commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/surveyclean/internal/config"
	"github.com/JonMunkholm/surveyclean/internal/core"
	"github.com/JonMunkholm/surveyclean/internal/logging"
	"github.com/JonMunkholm/surveyclean/internal/metrics"
)

// Env is what a command gets after start-up.
type Env struct {
	Ctx     context.Context
	Config  *config.Config
	RunID   string
	Metrics *metrics.Run

	stop context.CancelFunc
}

// Start loads .env and the configuration, sets up logging and opens a run.
// The returned Env must be finished with Finish.
func Start(command string) (*Env, error) {
	// Overload overwrites existing env vars with .env values
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	env := NewEnv(ctx, cfg, command)
	env.stop = stop

	logging.FromContext(env.Ctx).Info("configuration loaded",
		"command", command,
		"config", cfg.String(),
	)
	return env, nil
}

// NewEnv opens a run on ctx without touching the process environment.
func NewEnv(ctx context.Context, cfg *config.Config, command string) *Env {
	ctx, runID := logging.NewRun(ctx)
	return &Env{
		Ctx:     ctx,
		Config:  cfg,
		RunID:   runID,
		Metrics: metrics.NewRun(command),
	}
}

// Finish writes the metrics textfile, if configured, and releases the run.
// A metrics failure is only a warning.
func (e *Env) Finish() {
	if path := e.Config.Metrics.Textfile; path != "" {
		if err := e.Metrics.WriteTextfile(path); err != nil {
			logging.FromContext(e.Ctx).Warn("failed to write metrics", "path", path, "error", err)
		}
	}
	if e.stop != nil {
		e.stop()
	}
}

// Fail logs err with its operator message and prints that message to w.
// It returns the process exit code.
func Fail(ctx context.Context, w io.Writer, msg string, err error) int {
	um := core.MapError(err)
	logging.FromContext(ctx).Error(msg,
		"error", err,
		"code", um.Code,
		"action", um.Action,
	)
	fmt.Fprintln(w, core.FormatUserError(err))
	return 1
}
