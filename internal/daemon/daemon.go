package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"blossom/internal/config"
	"blossom/internal/deps"
	"blossom/internal/history"
	"blossom/internal/pipeline"
	"blossom/internal/uploads"
)

// Daemon owns the analysis pipeline and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	pipe    *pipeline.Pipeline
	store   *history.Store
	uploads *uploads.Store
	deps    []deps.Status

	lockPath string
	lock     *flock.Flock
	server   *apiServer

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	Analyzer     string
	Classifier   string
	Generator    string
	TextModel    bool
	HistoryPath  string
	LockFilePath string
	Dependencies []deps.Status
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, pipe *pipeline.Pipeline, store *history.Store, uploadStore *uploads.Store, statuses []deps.Status, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || pipe == nil || uploadStore == nil || logger == nil {
		return nil, errors.New("daemon requires config, pipeline, upload store, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "blossomd.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		pipe:     pipe,
		store:    store,
		uploads:  uploadStore,
		deps:     statuses,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	server, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.server = server
	return d, nil
}

// Start acquires the daemon lock and brings up the HTTP server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another blossom daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	if d.server != nil {
		if err := d.server.start(runCtx); err != nil {
			_ = d.lock.Unlock()
			cancel()
			d.cancel = nil
			return err
		}
	}

	d.running.Store(true)
	d.logger.Info("blossom daemon started",
		slog.String("lock", d.lockPath),
		slog.String("analyzer", d.pipe.ExtractorName()),
		slog.String("classifier", d.pipe.ClassifierName()),
		slog.String("generator", d.pipe.GeneratorName()))
	return nil
}

// Stop shuts down the HTTP server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.server != nil {
		d.server.stop()
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", slog.String("error", err.Error()))
	}
	d.running.Store(false)
	d.logger.Info("blossom daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports the daemon's runtime state and backend tiers.
func (d *Daemon) Status() Status {
	historyPath := ""
	if d.store != nil {
		historyPath = d.store.Path()
	}
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		Analyzer:     d.pipe.ExtractorName(),
		Classifier:   d.pipe.ClassifierName(),
		Generator:    d.pipe.GeneratorName(),
		TextModel:    d.pipe.TextModelLoaded(),
		HistoryPath:  historyPath,
		LockFilePath: d.lockPath,
		Dependencies: d.deps,
	}
}
