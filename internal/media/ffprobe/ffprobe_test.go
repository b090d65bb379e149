package ffprobe

import (
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", NBFrames: "240"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "8.0",
			Size:     "2048",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.DurationSeconds() != 8.0 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.FrameCount() != 240 {
		t.Fatalf("unexpected frame count: %d", result.FrameCount())
	}
	if result.SizeBytes() != 2048 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", NBFrames: "nope"},
		},
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.FrameCount() != 0 {
		t.Fatalf("expected frame count 0, got %d", result.FrameCount())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
}
