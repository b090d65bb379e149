package analyzer

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"blossom/internal/emotion"
	"blossom/internal/logging"
)

func TestFileHeuristicIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portrait.jpg")
	if err := os.WriteFile(path, make([]byte, 1234), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	heuristic := NewFileHeuristic(logging.NewNop())
	first, err := heuristic.ExtractImage(t.Context(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	second, err := heuristic.ExtractImage(t.Context(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	for _, label := range emotion.Labels {
		if first.Weight(label) != second.Weight(label) {
			t.Fatalf("non-deterministic weight for %s: %v vs %v",
				label, first.Weight(label), second.Weight(label))
		}
	}
	if math.Abs(first.Sum()-1.0) > 1e-6 {
		t.Fatalf("expected weights to sum to 1, got %v", first.Sum())
	}
	if first.Weight("happy") <= 0 || first.Weight("neutral") <= 0 {
		t.Fatal("expected positive happy and neutral weights")
	}
}

func TestFileHeuristicMissingFileFallsBackToDefault(t *testing.T) {
	heuristic := NewFileHeuristic(logging.NewNop())
	vector, err := heuristic.ExtractImage(t.Context(), filepath.Join(t.TempDir(), "absent.jpg"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := emotion.Default()
	for _, label := range emotion.Labels {
		if vector.Weight(label) != want.Weight(label) {
			t.Fatalf("expected default weight for %s, got %v", label, vector.Weight(label))
		}
	}
}

func TestFileHeuristicVideoMatchesImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, make([]byte, 987), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	heuristic := NewFileHeuristic(logging.NewNop())
	image, _ := heuristic.ExtractImage(t.Context(), path)
	video, _ := heuristic.ExtractVideo(t.Context(), path)
	for _, label := range emotion.Labels {
		if image.Weight(label) != video.Weight(label) {
			t.Fatalf("video weight for %s diverged from image", label)
		}
	}
}
