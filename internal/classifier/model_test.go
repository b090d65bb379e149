package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"blossom/internal/emotion"
)

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestLoadRiskModelRejectsShapeMismatch(t *testing.T) {
	path := writeArtifact(t, "risk.json", `{
		"labels": ["low_risk", "high_risk"],
		"weights": [[1, 0, 0, 0, 0, 0, 0]]
	}`)
	if _, err := LoadRiskModel(path); err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestLoadRiskModelRejectsMissingFile(t *testing.T) {
	if _, err := LoadRiskModel(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestRiskModelClassify(t *testing.T) {
	// Weighted to prefer high_risk when sadness dominates.
	path := writeArtifact(t, "risk.json", `{
		"labels": ["low_risk", "high_risk"],
		"weights": [
			[0, 0, 0, 4, -4, 0, 1],
			[0, 0, 4, -4, 4, 0, -1]
		],
		"bias": [0, 0]
	}`)
	model, err := LoadRiskModel(path)
	if err != nil {
		t.Fatalf("LoadRiskModel: %v", err)
	}

	sad := model.Classify(emotion.FromMap(map[string]float64{"sad": 1}))
	if sad.Label != "high_risk" {
		t.Fatalf("sad vector label = %q, want high_risk", sad.Label)
	}
	if sad.Confidence <= 0.5 || sad.Confidence > 1 {
		t.Fatalf("confidence = %v, want in (0.5, 1]", sad.Confidence)
	}

	happy := model.Classify(emotion.FromMap(map[string]float64{"happy": 1}))
	if happy.Label != "low_risk" {
		t.Fatalf("happy vector label = %q, want low_risk", happy.Label)
	}
}

func TestRiskModelIsTotal(t *testing.T) {
	path := writeArtifact(t, "risk.json", `{
		"labels": ["low_risk"],
		"weights": [[0, 0, 0, 0, 0, 0, 0]]
	}`)
	model, err := LoadRiskModel(path)
	if err != nil {
		t.Fatalf("LoadRiskModel: %v", err)
	}
	diagnosis := model.Classify(emotion.New())
	if diagnosis.Confidence < 0 || diagnosis.Confidence > 1 {
		t.Fatalf("confidence %v outside [0, 1]", diagnosis.Confidence)
	}
}
