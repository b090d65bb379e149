package analyzer

import (
	"context"
	"log/slog"

	"blossom/internal/config"
	"blossom/internal/deps"
	"blossom/internal/emotion"
)

// Extractor produces an emotion vector from a media file.
type Extractor interface {
	Name() string
	ExtractImage(ctx context.Context, path string) (emotion.Vector, error)
	ExtractVideo(ctx context.Context, path string) (emotion.Vector, error)
}

// Select picks the strongest extractor the host can support. The decision is
// made once at startup from the dependency probe so request handling never
// discovers missing binaries mid-flight.
func Select(cfg *config.Config, statuses []deps.Status, logger *slog.Logger) Extractor {
	command := cfg.Analysis.EmotionCommand
	if deps.Available(statuses, "Emotion model") {
		full := NewFull(cfg, logger)
		if !deps.Available(statuses, "ffmpeg") || !deps.Available(statuses, "ffprobe") {
			logger.Warn("video tooling missing, video analysis will substitute default emotions",
				"extractor", full.Name())
		}
		return full
	}
	logger.Warn("emotion command unavailable, using file heuristics", "command", command)
	return NewFileHeuristic(logger)
}
