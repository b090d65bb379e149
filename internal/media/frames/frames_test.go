package frames

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListReturnsFramesInOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{"frame_00003.jpg", "frame_00001.jpg", "frame_00002.jpg", "notes.txt"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	paths, err := List(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(paths))
	}
	for i, want := range []string{"frame_00001.jpg", "frame_00002.jpg", "frame_00003.jpg"} {
		if filepath.Base(paths[i]) != want {
			t.Fatalf("frame %d: expected %s, got %s", i, want, filepath.Base(paths[i]))
		}
	}
}

func TestExtractRejectsEmptyPath(t *testing.T) {
	if _, _, err := Extract(t.Context(), "ffmpeg", "", 30); err == nil {
		t.Fatal("expected error for empty path")
	}
}
