package analyzer

import (
	"context"
	"log/slog"

	"blossom/internal/emotion"
)

// Degraded substitutes the default neutral vector for every request. The
// pipeline reaches for it when the active extractor fails at runtime, so
// analysis keeps answering instead of surfacing tool errors to callers.
type Degraded struct {
	logger *slog.Logger
}

func NewDegraded(logger *slog.Logger) *Degraded {
	return &Degraded{logger: logger}
}

func (d *Degraded) Name() string { return "degraded" }

func (d *Degraded) ExtractImage(_ context.Context, path string) (emotion.Vector, error) {
	d.logger.Warn("substituting default emotions", "path", path, "kind", "image")
	return emotion.Default(), nil
}

func (d *Degraded) ExtractVideo(_ context.Context, path string) (emotion.Vector, error) {
	d.logger.Warn("substituting default emotions", "path", path, "kind", "video")
	return emotion.Default(), nil
}
