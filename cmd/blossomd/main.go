package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"blossom/internal/config"
	"blossom/internal/daemon"
	"blossom/internal/deps"
	"blossom/internal/history"
	"blossom/internal/logging"
	"blossom/internal/preflight"
	"blossom/internal/uploads"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	for _, result := range preflight.RunAll(ctx, cfg) {
		if result.Passed {
			logger.Debug("preflight check passed", slog.String("check", result.Name), slog.String("detail", result.Detail))
		} else {
			logger.Warn("preflight check failed", slog.String("check", result.Name), slog.String("detail", result.Detail))
		}
	}

	statuses := deps.CheckBinaries(deps.Requirements(cfg))

	store, err := history.Open(cfg)
	if err != nil {
		logger.Error("open history store", slog.String("error", err.Error()))
		store = nil
	}

	uploadStore, err := uploads.NewStore(cfg)
	if err != nil {
		logger.Error("create upload store", slog.String("error", err.Error()))
		return
	}

	pipe, err := buildPipeline(ctx, cfg, statuses, store, logger)
	if err != nil {
		logger.Error("assemble pipeline", slog.String("error", err.Error()))
		return
	}

	d, err := daemon.New(cfg, pipe, store, uploadStore, statuses, logger)
	if err != nil {
		logger.Error("create daemon", slog.String("error", err.Error()))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", slog.String("error", err.Error()))
		return
	}

	<-ctx.Done()
	logger.Info("blossomd shutting down")
}
