package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"blossom/internal/config"
	"blossom/internal/emotion"
	"blossom/internal/media/ffprobe"
	"blossom/internal/media/frames"
)

// Full drives the configured emotion-model command for every image and
// samples video frames with ffmpeg before averaging the per-frame vectors.
type Full struct {
	command      string
	ffmpeg       string
	ffprobe      string
	frameStride  int
	frameTimeout time.Duration
	logger       *slog.Logger
}

// NewFull builds the full-capability extractor from configuration.
func NewFull(cfg *config.Config, logger *slog.Logger) *Full {
	return &Full{
		command:      cfg.Analysis.EmotionCommand,
		ffmpeg:       cfg.FFmpegBinary(),
		ffprobe:      cfg.FFprobeBinary(),
		frameStride:  cfg.Analysis.FrameStride,
		frameTimeout: time.Duration(cfg.Analysis.FrameTimeoutSeconds) * time.Second,
		logger:       logger,
	}
}

func (f *Full) Name() string { return "full" }

// ExtractImage runs the emotion command against a single still and parses
// its JSON emotion map.
func (f *Full) ExtractImage(ctx context.Context, path string) (emotion.Vector, error) {
	if err := checkReadable(path); err != nil {
		return emotion.Vector{}, err
	}
	runCtx := ctx
	if f.frameTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, f.frameTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, f.command, path)
	output, err := cmd.Output()
	if err != nil {
		return emotion.Vector{}, fmt.Errorf("emotion command: %w", err)
	}
	vector, err := parseEmotionOutput(output)
	if err != nil {
		return emotion.Vector{}, err
	}
	return vector, nil
}

// ExtractVideo samples every strideth frame, analyzes each still, and
// averages the results. Frames the command cannot analyze are skipped; a
// video yielding no usable frames falls back to the default vector.
func (f *Full) ExtractVideo(ctx context.Context, path string) (emotion.Vector, error) {
	if err := checkReadable(path); err != nil {
		return emotion.Vector{}, err
	}

	report, probeErr := ffprobe.Inspect(ctx, f.ffprobe, path)
	if probeErr != nil {
		f.logger.Debug("media probe unavailable, sampling without validation",
			"path", path, "error", probeErr)
	} else {
		if report.VideoStreamCount() == 0 {
			return emotion.Vector{}, fmt.Errorf("media file %s has no video stream", path)
		}
		f.logger.Debug("video probed",
			"path", path,
			"duration_seconds", report.DurationSeconds(),
			"size_bytes", report.SizeBytes(),
			"declared_frames", report.FrameCount())
	}

	dir, framePaths, err := frames.Extract(ctx, f.ffmpeg, path, f.frameStride)
	if err != nil {
		return emotion.Vector{}, fmt.Errorf("sample video: %w", err)
	}
	defer os.RemoveAll(dir)

	vectors := make([]emotion.Vector, 0, len(framePaths))
	for _, framePath := range framePaths {
		vector, frameErr := f.ExtractImage(ctx, framePath)
		if frameErr != nil {
			f.logger.Debug("skipping unanalyzable frame", "frame", framePath, "error", frameErr)
			continue
		}
		vectors = append(vectors, vector)
	}

	mean, ok := emotion.Mean(vectors)
	if !ok {
		f.logger.Warn("no analyzable frames in video", "path", path)
		return emotion.Default(), nil
	}
	return mean, nil
}

// parseEmotionOutput decodes the emotion command's JSON object of
// label to score. Unknown labels are dropped, negatives clamped.
func parseEmotionOutput(output []byte) (emotion.Vector, error) {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return emotion.Vector{}, errors.New("emotion command: empty output")
	}
	var scores map[string]float64
	if err := json.Unmarshal([]byte(trimmed), &scores); err != nil {
		return emotion.Vector{}, fmt.Errorf("emotion command output: %w", err)
	}
	return emotion.FromMap(scores), nil
}

func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("media file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("media file %s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("media file %s is empty", path)
	}
	return nil
}
