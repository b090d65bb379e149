package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blossom/internal/classifier"
	"blossom/internal/config"
	"blossom/internal/emotion"
)

type recordingBackend struct {
	prompt string
	params Params
	reply  string
	err    error
}

func (r *recordingBackend) Name() string { return "recording" }

func (r *recordingBackend) Generate(_ context.Context, prompt string, params Params) (string, error) {
	r.prompt = prompt
	r.params = params
	return r.reply, r.err
}

func testGenerationConfig() config.Generation {
	cfg := config.Default()
	return cfg.Generation
}

func TestBuildAdvicePromptSkipsWeakSignals(t *testing.T) {
	vector := emotion.FromMap(map[string]float64{"sad": 0.6, "fear": 0.05, "neutral": 0.2})
	prompt := BuildAdvicePrompt(vector, classifier.Diagnosis{Label: "moderate_risk", Confidence: 0.6})
	if !strings.Contains(prompt, "sad: 0.60") {
		t.Fatalf("prompt missing dominant emotion: %q", prompt)
	}
	if strings.Contains(prompt, "fear") {
		t.Fatalf("prompt mentions sub-threshold emotion: %q", prompt)
	}
	if !strings.Contains(prompt, "Depression risk: moderate_risk") {
		t.Fatalf("prompt missing diagnosis: %q", prompt)
	}
}

func TestServiceEmotionAdviceUsesAdviceDefaults(t *testing.T) {
	backend := &recordingBackend{reply: "take a walk"}
	svc := NewService(backend, testGenerationConfig())

	out, err := svc.EmotionAdvice(context.Background(), emotion.Default(), classifier.Diagnosis{Label: "low_risk", Confidence: 0.9})
	if err != nil {
		t.Fatalf("EmotionAdvice: %v", err)
	}
	if out != "take a walk" {
		t.Fatalf("reply = %q", out)
	}
	if backend.params.MaxLength != 150 {
		t.Fatalf("advice max length = %d, want 150", backend.params.MaxLength)
	}
	if backend.params.Temperature != 0.8 {
		t.Fatalf("advice temperature = %v, want 0.8", backend.params.Temperature)
	}
	if backend.params.Conversational {
		t.Fatal("advice request marked conversational")
	}
}

func TestServiceChatResponseMarksConversational(t *testing.T) {
	backend := &recordingBackend{reply: "hello"}
	svc := NewService(backend, testGenerationConfig())

	if _, err := svc.ChatResponse(context.Background(), "hi there"); err != nil {
		t.Fatalf("ChatResponse: %v", err)
	}
	if !backend.params.Conversational {
		t.Fatal("chat request not marked conversational")
	}
	if !strings.HasPrefix(backend.prompt, "User: hi there") {
		t.Fatalf("chat prompt = %q", backend.prompt)
	}
	if backend.params.MaxLength != 100 || backend.params.Temperature != 0.7 {
		t.Fatalf("chat params = %+v", backend.params)
	}
}

func TestServiceChatResponseRejectsEmptyMessage(t *testing.T) {
	svc := NewService(&recordingBackend{}, testGenerationConfig())
	if _, err := svc.ChatResponse(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty message")
	}
}

func TestServicePropagatesBackendFailure(t *testing.T) {
	backend := &recordingBackend{err: errors.New("quota exceeded")}
	svc := NewService(backend, testGenerationConfig())
	if _, err := svc.ChatResponse(context.Background(), "hi"); err == nil {
		t.Fatal("expected backend error to propagate to the containment layer")
	}
}

func TestStaticBackendFixedReplies(t *testing.T) {
	static := NewStatic()
	advice, err := static.Generate(context.Background(), "anything", Params{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if advice != staticAdviceMessage {
		t.Fatalf("advice reply = %q", advice)
	}
	chat, err := static.Generate(context.Background(), "anything", Params{Conversational: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if chat != staticChatMessage {
		t.Fatalf("chat reply = %q", chat)
	}
}
