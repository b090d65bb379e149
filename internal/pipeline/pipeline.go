package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"blossom/internal/analyzer"
	"blossom/internal/chatbot"
	"blossom/internal/classifier"
	"blossom/internal/emotion"
	"blossom/internal/generator"
	"blossom/internal/history"
	"blossom/internal/remedies"
)

// ErrEmptyText rejects diagnosis and chat requests with no content.
var ErrEmptyText = errors.New("no text provided")

// ErrTextModelUnavailable reports that the text diagnosis artifacts were not
// loadable at startup.
var ErrTextModelUnavailable = errors.New("text diagnosis model not loaded")

// staticAdvice is returned whenever advice generation fails outright.
const staticAdvice = "I'm here to support you. Please take care of yourself and consider reaching out to a trusted person or professional if you need additional support."

// Analysis is the outcome of one media analysis run.
type Analysis struct {
	Kind      string
	FilePath  string
	Emotions  emotion.Vector
	Diagnosis classifier.Diagnosis
	Advice    string
	Backend   string
}

// Summary renders the one-line description used in prompts and logs.
func (a Analysis) Summary() string {
	return fmt.Sprintf("Emotions: %s. Diagnosis: %s (confidence %.2f).",
		a.Emotions.String(), a.Diagnosis.Label, a.Diagnosis.Confidence)
}

// TextDiagnosis is the outcome of a text diagnosis run.
type TextDiagnosis struct {
	Diagnosis classifier.Diagnosis
	Remedies  remedies.Bundle
}

// Pipeline wires the extractor, classifiers, remedy selector, and generator
// into the operations the daemon exposes. Each stage degrades independently;
// a pipeline never refuses an analysis because a stronger backend is missing.
type Pipeline struct {
	extractor  analyzer.Extractor
	degraded   analyzer.Extractor
	classifier classifier.Classifier
	text       *classifier.TextClassifier
	remedies   *remedies.Selector
	generator  *generator.Service
	bot        *chatbot.Bot
	store      *history.Store
	logger     *slog.Logger
}

// Options collects the pipeline's collaborators. Text and Store may be nil;
// everything else is required.
type Options struct {
	Extractor  analyzer.Extractor
	Classifier classifier.Classifier
	Text       *classifier.TextClassifier
	Remedies   *remedies.Selector
	Generator  *generator.Service
	Bot        *chatbot.Bot
	Store      *history.Store
	Logger     *slog.Logger
}

// New validates the options and assembles a pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Extractor == nil {
		return nil, errors.New("pipeline: extractor required")
	}
	if opts.Classifier == nil {
		return nil, errors.New("pipeline: classifier required")
	}
	if opts.Remedies == nil {
		return nil, errors.New("pipeline: remedy selector required")
	}
	if opts.Generator == nil {
		return nil, errors.New("pipeline: generator required")
	}
	if opts.Bot == nil {
		return nil, errors.New("pipeline: chatbot required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor:  opts.Extractor,
		degraded:   analyzer.NewDegraded(logger),
		classifier: opts.Classifier,
		text:       opts.Text,
		remedies:   opts.Remedies,
		generator:  opts.Generator,
		bot:        opts.Bot,
		store:      opts.Store,
		logger:     logger,
	}, nil
}

// ExtractorName reports which extractor variant is active.
func (p *Pipeline) ExtractorName() string { return p.extractor.Name() }

// ClassifierName reports which risk classifier variant is active.
func (p *Pipeline) ClassifierName() string { return p.classifier.Name() }

// GeneratorName reports which generation backend is active.
func (p *Pipeline) GeneratorName() string { return p.generator.Name() }

// TextModelLoaded reports whether text diagnosis is available.
func (p *Pipeline) TextModelLoaded() bool { return p.text != nil }

// AnalyzeImage runs the full image flow: extract emotions, classify risk,
// and generate supportive advice.
func (p *Pipeline) AnalyzeImage(ctx context.Context, path string) (Analysis, error) {
	return p.analyzeMedia(ctx, "image", path, p.extractor.ExtractImage)
}

// AnalyzeVideo runs the same flow over sampled video frames.
func (p *Pipeline) AnalyzeVideo(ctx context.Context, path string) (Analysis, error) {
	return p.analyzeMedia(ctx, "video", path, p.extractor.ExtractVideo)
}

func (p *Pipeline) analyzeMedia(ctx context.Context, kind, path string, extract func(context.Context, string) (emotion.Vector, error)) (Analysis, error) {
	vector, err := extract(ctx, path)
	if err != nil {
		p.logger.Warn("emotion extraction failed, degrading",
			"kind", kind, "path", path, "error", err)
		if kind == "video" {
			vector, _ = p.degraded.ExtractVideo(ctx, path)
		} else {
			vector, _ = p.degraded.ExtractImage(ctx, path)
		}
	}

	diagnosis := p.classifier.Classify(vector)
	result := Analysis{
		Kind:      kind,
		FilePath:  path,
		Emotions:  vector,
		Diagnosis: diagnosis,
		Backend:   p.extractor.Name(),
	}

	advice, adviceErr := p.generator.EmotionAdvice(ctx, vector, diagnosis)
	if adviceErr != nil || strings.TrimSpace(advice) == "" {
		if adviceErr != nil {
			p.logger.Warn("advice generation failed", "error", adviceErr)
		}
		advice = staticAdvice
	}
	result.Advice = advice

	p.record(ctx, kind, path, diagnosis, p.extractor.Name(), vector.Map())
	p.logger.Info("analysis complete", "kind", kind, "summary", result.Summary())
	return result, nil
}

// DiagnoseText classifies raw user text and attaches personalized remedies.
func (p *Pipeline) DiagnoseText(ctx context.Context, text string) (TextDiagnosis, error) {
	if strings.TrimSpace(text) == "" {
		return TextDiagnosis{}, ErrEmptyText
	}
	if p.text == nil {
		return TextDiagnosis{}, ErrTextModelUnavailable
	}

	diagnosis, err := p.text.Diagnose(text)
	if err != nil {
		return TextDiagnosis{}, fmt.Errorf("diagnose text: %w", err)
	}
	bundle := p.remedies.Select(diagnosis.Label)

	p.record(ctx, "text", "diagnose", diagnosis, "text-model", nil)
	return TextDiagnosis{Diagnosis: diagnosis, Remedies: bundle}, nil
}

// Chat generates a conversational reply, falling back to the rule-based
// responder when generation fails. The fallback flag tells callers which
// path answered.
func (p *Pipeline) Chat(ctx context.Context, text string) (reply string, fallback bool, err error) {
	if strings.TrimSpace(text) == "" {
		return "", false, ErrEmptyText
	}
	reply, genErr := p.generator.ChatResponse(ctx, text)
	if genErr != nil || strings.TrimSpace(reply) == "" {
		if genErr != nil {
			p.logger.Warn("chat generation failed, using responder", "error", genErr)
		}
		return p.bot.Respond(text), true, nil
	}
	return reply, false, nil
}

func (p *Pipeline) record(ctx context.Context, kind, source string, diagnosis classifier.Diagnosis, backend string, emotions map[string]float64) {
	if p.store == nil {
		return
	}
	entry := history.Entry{
		Kind:       kind,
		Source:     source,
		Diagnosis:  diagnosis.Label,
		Confidence: diagnosis.Confidence,
		Backend:    backend,
		Emotions:   emotions,
	}
	if _, err := p.store.Record(ctx, entry); err != nil {
		p.logger.Warn("history record failed", "kind", kind, "error", err)
	}
}
