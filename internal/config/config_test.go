package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Analysis.FrameStride != defaultFrameStride {
		t.Fatalf("frame stride = %d, want %d", cfg.Analysis.FrameStride, defaultFrameStride)
	}
	if cfg.Generation.TopP != defaultTopP {
		t.Fatalf("top_p = %v, want %v", cfg.Generation.TopP, defaultTopP)
	}
	if !filepath.IsAbs(cfg.Paths.UploadDir) {
		t.Fatalf("upload dir not absolute: %s", cfg.Paths.UploadDir)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[analysis]
frame_stride = 10

[generation]
model = "gemini-2.5-pro"
temperature = 0.5

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved path %s (exists), got %s exists=%v", path, resolved, exists)
	}
	if cfg.Analysis.FrameStride != 10 {
		t.Fatalf("frame stride = %d, want 10", cfg.Analysis.FrameStride)
	}
	if cfg.Generation.Model != "gemini-2.5-pro" {
		t.Fatalf("model = %q", cfg.Generation.Model)
	}
	if cfg.Generation.Temperature != 0.5 {
		t.Fatalf("temperature = %v, want 0.5", cfg.Generation.Temperature)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("log format = %q, want json", cfg.Logging.Format)
	}
}

func TestValidateRejectsBadTopP(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Generation.TopP = 1.5
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "top_p") {
		t.Fatalf("expected top_p validation error, got %v", err)
	}
}

func TestValidateRejectsBadLogFormat(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestModelPathResolution(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	resolved := cfg.ModelPath("risk_model.json")
	if !strings.HasPrefix(resolved, cfg.Paths.ModelDir) {
		t.Fatalf("relative artifact not resolved against model dir: %s", resolved)
	}
	abs := string(filepath.Separator) + filepath.Join("opt", "models", "a.json")
	if got := cfg.ModelPath(abs); got != abs {
		t.Fatalf("absolute artifact rewritten: %s", got)
	}
	if got := cfg.ModelPath("  "); got != "" {
		t.Fatalf("blank artifact should stay empty, got %q", got)
	}
}
