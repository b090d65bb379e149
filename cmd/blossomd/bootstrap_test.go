package main

import (
	"testing"

	"blossom/internal/logging"
	"blossom/internal/testsupport"
)

func TestBuildPipelineDegradesWithoutArtifacts(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEmotionCommand("no-such-emotion-cli"))
	cfg.Generation.APIKey = ""
	t.Setenv("GEMINI_API_KEY", "")

	pipe, err := buildPipeline(t.Context(), cfg, nil, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("build pipeline: %v", err)
	}

	if pipe.ExtractorName() != "file-heuristic" {
		t.Fatalf("expected file-heuristic extractor, got %q", pipe.ExtractorName())
	}
	if pipe.ClassifierName() != "heuristic" {
		t.Fatalf("expected heuristic classifier, got %q", pipe.ClassifierName())
	}
	if pipe.GeneratorName() != "static" {
		t.Fatalf("expected static generator, got %q", pipe.GeneratorName())
	}
	if pipe.TextModelLoaded() {
		t.Fatal("text model should not be loaded without artifacts")
	}
}
