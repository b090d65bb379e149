package generator

import (
	"context"
	"fmt"
	"strings"

	"blossom/internal/classifier"
	"blossom/internal/config"
	"blossom/internal/emotion"
)

// Params controls a single generation call.
type Params struct {
	// MaxLength caps the total token count, prompt included.
	MaxLength int
	// Temperature scales logits before sampling.
	Temperature float64
	// TopP is the nucleus sampling threshold in (0, 1].
	TopP float64
	// Sample selects stochastic decoding; greedy otherwise.
	Sample bool
	// Conversational marks chat-style requests so the static fallback can
	// pick its conversational reply.
	Conversational bool
}

// Backend produces free text from a prompt. Variants: hosted Gemini, local
// exported model, static fallback. Which one serves the process is resolved
// once at startup and never re-probed per call.
type Backend interface {
	// Name identifies the variant for status reporting.
	Name() string
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Service wraps the selected backend with prompt construction and the
// sampling defaults from configuration.
type Service struct {
	backend Backend
	cfg     config.Generation
}

// NewService wraps a backend with generation defaults.
func NewService(backend Backend, cfg config.Generation) *Service {
	return &Service{backend: backend, cfg: cfg}
}

// Name reports the active backend variant.
func (s *Service) Name() string {
	return s.backend.Name()
}

// Generate issues a raw generation call with chat defaults.
func (s *Service) Generate(ctx context.Context, prompt string, conversational bool) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("generate: empty prompt")
	}
	return s.backend.Generate(ctx, prompt, Params{
		MaxLength:      s.cfg.MaxLength,
		Temperature:    s.cfg.Temperature,
		TopP:           s.cfg.TopP,
		Sample:         true,
		Conversational: conversational,
	})
}

// EmotionAdvice builds a structured prompt from the analysis outcome and
// generates supportive advice.
func (s *Service) EmotionAdvice(ctx context.Context, vector emotion.Vector, diagnosis classifier.Diagnosis) (string, error) {
	return s.backend.Generate(ctx, BuildAdvicePrompt(vector, diagnosis), Params{
		MaxLength:   s.cfg.AdviceMaxLength,
		Temperature: s.cfg.AdviceTemperature,
		TopP:        s.cfg.TopP,
		Sample:      true,
	})
}

// ChatResponse generates a conversational reply to the user's message.
func (s *Service) ChatResponse(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("chat response: empty message")
	}
	return s.backend.Generate(ctx, BuildChatPrompt(message), Params{
		MaxLength:      s.cfg.MaxLength,
		Temperature:    s.cfg.Temperature,
		TopP:           s.cfg.TopP,
		Sample:         true,
		Conversational: true,
	})
}

// BuildAdvicePrompt renders the structured summary prompt used for
// emotion-based advice. Only weights above 0.1 are mentioned.
func BuildAdvicePrompt(vector emotion.Vector, diagnosis classifier.Diagnosis) string {
	parts := make([]string, 0, len(emotion.Labels))
	for _, label := range emotion.Labels {
		if weight := vector.Weight(label); weight > 0.1 {
			parts = append(parts, fmt.Sprintf("%s: %.2f", label, weight))
		}
	}
	return fmt.Sprintf(
		"Emotions detected: %s. Depression risk: %s. Provide supportive, practical advice:",
		strings.Join(parts, ", "),
		diagnosis.Label,
	)
}

// BuildChatPrompt renders the conversational prompt for a user message.
func BuildChatPrompt(message string) string {
	return fmt.Sprintf("User: %s\nAssistant:", strings.TrimSpace(message))
}
