package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"blossom/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Data directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for %s: %s", dir, result.Detail)
	}

	missing := CheckDirectoryAccess("Data directory", filepath.Join(dir, "absent"))
	if missing.Passed {
		t.Fatal("expected failure for missing directory")
	}
}

func TestCheckArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "risk_model.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if result := CheckArtifact("Risk model", path); !result.Passed {
		t.Fatalf("expected pass: %s", result.Detail)
	}
	if result := CheckArtifact("Risk model", filepath.Join(dir, "absent.json")); result.Passed {
		t.Fatal("expected failure for missing artifact")
	}
	if result := CheckArtifact("Risk model", ""); result.Passed {
		t.Fatal("expected failure for unconfigured artifact")
	}
}

func TestRunAllReportsEveryCheck(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	results := RunAll(t.Context(), cfg)
	if len(results) != 8 {
		t.Fatalf("expected 8 checks, got %d", len(results))
	}
	names := make(map[string]bool, len(results))
	for _, result := range results {
		names[result.Name] = true
	}
	for _, want := range []string{"Data directory", "Risk model", "Generation API key"} {
		if !names[want] {
			t.Fatalf("missing check %q", want)
		}
	}
}
