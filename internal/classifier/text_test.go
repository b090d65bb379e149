package classifier

import (
	"path/filepath"
	"testing"
)

func textArtifacts(t *testing.T) (string, string) {
	t.Helper()
	vectorizer := writeArtifact(t, "vectorizer.json", `{
		"vocabulary": {"hopeless": 0, "exhausted": 1, "grateful": 2, "content": 3}
	}`)
	model := writeArtifact(t, "model.json", `{
		"labels": ["no_risk", "severe"],
		"weights": [
			[-2, -1, 3, 3],
			[3, 2, -2, -2]
		]
	}`)
	return vectorizer, model
}

func TestLoadTextClassifierMissingArtifacts(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := LoadTextClassifier(missing, missing); err == nil {
		t.Fatal("expected error for missing artifacts")
	}
	if _, err := LoadTextClassifier("", ""); err == nil {
		t.Fatal("expected error for blank paths")
	}
}

func TestTextClassifierDiagnose(t *testing.T) {
	vectorizerPath, modelPath := textArtifacts(t)
	clf, err := LoadTextClassifier(vectorizerPath, modelPath)
	if err != nil {
		t.Fatalf("LoadTextClassifier: %v", err)
	}

	diagnosis, err := clf.Diagnose("I feel hopeless and exhausted")
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if diagnosis.Label != "severe" {
		t.Fatalf("label = %q, want severe", diagnosis.Label)
	}
	if diagnosis.Confidence <= 0.5 || diagnosis.Confidence > 1 {
		t.Fatalf("confidence = %v, want in (0.5, 1]", diagnosis.Confidence)
	}

	diagnosis, err = clf.Diagnose("grateful and content today")
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if diagnosis.Label != "no_risk" {
		t.Fatalf("label = %q, want no_risk", diagnosis.Label)
	}
}

func TestTextClassifierRejectsEmptyText(t *testing.T) {
	vectorizerPath, modelPath := textArtifacts(t)
	clf, err := LoadTextClassifier(vectorizerPath, modelPath)
	if err != nil {
		t.Fatalf("LoadTextClassifier: %v", err)
	}
	if _, err := clf.Diagnose("   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestLoadTextClassifierRejectsShapeMismatch(t *testing.T) {
	vectorizer := writeArtifact(t, "vectorizer.json", `{"vocabulary": {"sad": 0}}`)
	model := writeArtifact(t, "model.json", `{
		"labels": ["a", "b"],
		"weights": [[1, 2], [3, 4]]
	}`)
	if _, err := LoadTextClassifier(vectorizer, model); err == nil {
		t.Fatal("expected feature-count mismatch error")
	}
}
