package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"blossom/internal/analyzer"
	"blossom/internal/chatbot"
	"blossom/internal/classifier"
	"blossom/internal/config"
	"blossom/internal/generator"
	"blossom/internal/logging"
	"blossom/internal/remedies"
)

type failingBackend struct{}

func (failingBackend) Name() string { return "failing" }

func (failingBackend) Generate(context.Context, string, generator.Params) (string, error) {
	return "", errors.New("backend down")
}

func testPipeline(t *testing.T, backend generator.Backend, text *classifier.TextClassifier) *Pipeline {
	t.Helper()
	selector, err := remedies.NewSelector()
	if err != nil {
		t.Fatalf("remedies: %v", err)
	}
	bot, err := chatbot.New()
	if err != nil {
		t.Fatalf("chatbot: %v", err)
	}
	cfg := config.Default()
	p, err := New(Options{
		Extractor:  analyzer.NewFileHeuristic(logging.NewNop()),
		Classifier: classifier.NewHeuristic(),
		Text:       text,
		Remedies:   selector,
		Generator:  generator.NewService(backend, cfg.Generation),
		Bot:        bot,
		Logger:     logging.NewNop(),
	})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	return p
}

func writeTextArtifacts(t *testing.T) *classifier.TextClassifier {
	t.Helper()
	dir := t.TempDir()
	vectorizerPath := filepath.Join(dir, "text_vectorizer.json")
	modelPath := filepath.Join(dir, "text_model.json")
	vectorizer := `{"vocabulary": {"hopeless": 0, "exhausted": 1, "great": 2}}`
	model := `{"labels": ["low_risk", "high_risk"], "weights": [[-2, -2, 2], [2, 2, -2]]}`
	if err := os.WriteFile(vectorizerPath, []byte(vectorizer), 0o644); err != nil {
		t.Fatalf("write vectorizer: %v", err)
	}
	if err := os.WriteFile(modelPath, []byte(model), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	text, err := classifier.LoadTextClassifier(vectorizerPath, modelPath)
	if err != nil {
		t.Fatalf("load text classifier: %v", err)
	}
	return text
}

func TestAnalyzeImageProducesDiagnosisAndAdvice(t *testing.T) {
	p := testPipeline(t, generator.NewStatic(), nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "portrait.jpg")
	if err := os.WriteFile(path, make([]byte, 512), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	result, err := p.AnalyzeImage(t.Context(), path)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Kind != "image" {
		t.Fatalf("unexpected kind %q", result.Kind)
	}
	if result.Diagnosis.Label == "" {
		t.Fatal("expected a diagnosis label")
	}
	if result.Advice == "" {
		t.Fatal("expected advice text")
	}
	if result.Backend != "file-heuristic" {
		t.Fatalf("unexpected backend %q", result.Backend)
	}
}

func TestAnalyzeImageSubstitutesAdviceWhenGenerationFails(t *testing.T) {
	p := testPipeline(t, failingBackend{}, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "portrait.jpg")
	if err := os.WriteFile(path, make([]byte, 512), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	result, err := p.AnalyzeImage(t.Context(), path)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Advice != staticAdvice {
		t.Fatalf("expected static advice, got %q", result.Advice)
	}
}

func TestDiagnoseTextEndToEnd(t *testing.T) {
	p := testPipeline(t, generator.NewStatic(), writeTextArtifacts(t))

	result, err := p.DiagnoseText(t.Context(), "I feel hopeless and exhausted")
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if result.Diagnosis.Label != "high_risk" {
		t.Fatalf("expected high_risk, got %q", result.Diagnosis.Label)
	}
	if result.Diagnosis.Confidence <= 0.5 {
		t.Fatalf("expected confident prediction, got %v", result.Diagnosis.Confidence)
	}
	if result.Remedies.Intro == "" || len(result.Remedies.Suggestions) == 0 {
		t.Fatalf("expected remedies, got %+v", result.Remedies)
	}
}

func TestDiagnoseTextRejectsEmptyInput(t *testing.T) {
	p := testPipeline(t, generator.NewStatic(), writeTextArtifacts(t))
	if _, err := p.DiagnoseText(t.Context(), "   "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestDiagnoseTextWithoutModel(t *testing.T) {
	p := testPipeline(t, generator.NewStatic(), nil)
	if _, err := p.DiagnoseText(t.Context(), "some text"); !errors.Is(err, ErrTextModelUnavailable) {
		t.Fatalf("expected ErrTextModelUnavailable, got %v", err)
	}
}

func TestChatFallsBackToResponder(t *testing.T) {
	p := testPipeline(t, failingBackend{}, nil)

	reply, fallback, err := p.Chat(t.Context(), "hello there")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !fallback {
		t.Fatal("expected fallback reply")
	}
	if reply == "" {
		t.Fatal("expected a reply")
	}
}

func TestChatUsesGeneratorWhenAvailable(t *testing.T) {
	p := testPipeline(t, generator.NewStatic(), nil)

	reply, fallback, err := p.Chat(t.Context(), "hello there")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if fallback {
		t.Fatal("expected generator reply")
	}
	if reply == "" {
		t.Fatal("expected a reply")
	}
}

func TestChatRejectsEmptyInput(t *testing.T) {
	p := testPipeline(t, generator.NewStatic(), nil)
	if _, _, err := p.Chat(t.Context(), ""); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}
