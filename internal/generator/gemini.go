package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"blossom/internal/config"
)

// Gemini is the hosted generation backend, talking to the Gemini API via the
// official SDK. It is the variant most exposed to external failure; callers
// contain its errors rather than surfacing them to end users.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini constructs the hosted backend. Construction fails when no API
// key is available or the client cannot initialize; the caller then probes
// the next-degraded variant.
func NewGemini(ctx context.Context, cfg config.Generation, apiKey string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini: api key required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: init client: %w", err)
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gemini{client: client, model: cfg.Model, timeout: timeout}, nil
}

// Name identifies the variant for status reporting.
func (g *Gemini) Name() string { return "gemini" }

// Generate issues a single content generation call with the supplied
// sampling parameters.
func (g *Gemini) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("gemini generate: empty prompt")
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(params.Temperature)),
		TopP:            genai.Ptr(float32(params.TopP)),
		MaxOutputTokens: int32(params.MaxLength),
	}
	content := genai.NewContentFromText(prompt, genai.RoleUser)
	resp, err := g.client.Models.GenerateContent(callCtx, g.model, []*genai.Content{content}, genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini generate: no candidates")
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			builder.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", errors.New("gemini generate: empty response text")
	}
	return text, nil
}
