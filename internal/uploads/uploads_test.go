package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blossom/internal/testsupport"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(testsupport.NewConfig(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSaveKeepsExtensionAndHidesName(t *testing.T) {
	store := testStore(t)
	id, path, err := store.Save("image", "My Face (1).JPG", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(id, "images/") {
		t.Fatalf("expected id under images/, got %s", id)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Fatalf("expected lowercase extension, got %s", path)
	}
	if strings.Contains(filepath.Base(path), "Face") {
		t.Fatalf("original name leaked into %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected contents: %q", data)
	}
}

func TestSaveRejectsEmptyPayload(t *testing.T) {
	store := testStore(t)
	if _, _, err := store.Save("video", "clip.mp4", strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestSanitizeExt(t *testing.T) {
	cases := map[string]string{
		"photo.png":        ".png",
		"clip.MP4":         ".mp4",
		"archive.tar.gz":   ".gz",
		"no-extension":     "",
		"weird.p;g":        "",
		"dots.somethinglong": "",
	}
	for input, want := range cases {
		if got := sanitizeExt(input); got != want {
			t.Fatalf("sanitizeExt(%q) = %q, want %q", input, got, want)
		}
	}
}
