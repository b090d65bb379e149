package main

import (
	"context"
	"log/slog"

	"blossom/internal/analyzer"
	"blossom/internal/chatbot"
	"blossom/internal/classifier"
	"blossom/internal/config"
	"blossom/internal/deps"
	"blossom/internal/generator"
	"blossom/internal/history"
	"blossom/internal/pipeline"
	"blossom/internal/remedies"
)

// buildPipeline resolves each stage to the strongest backend the host
// supports. Resolution happens once here; request handling never probes.
func buildPipeline(ctx context.Context, cfg *config.Config, statuses []deps.Status, store *history.Store, logger *slog.Logger) (*pipeline.Pipeline, error) {
	extractor := analyzer.Select(cfg, statuses, logger)

	riskClassifier := selectClassifier(cfg, logger)
	textClassifier := loadTextClassifier(cfg, logger)
	backend := selectGenerationBackend(ctx, cfg, logger)

	selector, err := remedies.NewSelector()
	if err != nil {
		return nil, err
	}
	bot, err := chatbot.New()
	if err != nil {
		return nil, err
	}

	return pipeline.New(pipeline.Options{
		Extractor:  extractor,
		Classifier: riskClassifier,
		Text:       textClassifier,
		Remedies:   selector,
		Generator:  generator.NewService(backend, cfg.Generation),
		Bot:        bot,
		Store:      store,
		Logger:     logger,
	})
}

func selectClassifier(cfg *config.Config, logger *slog.Logger) classifier.Classifier {
	path := cfg.ModelPath(cfg.Models.RiskModel)
	model, err := classifier.LoadRiskModel(path)
	if err != nil {
		logger.Warn("risk model unavailable, using heuristic classifier",
			slog.String("path", path), slog.String("error", err.Error()))
		return classifier.NewHeuristic()
	}
	logger.Info("risk model loaded", slog.String("path", path))
	return model
}

func loadTextClassifier(cfg *config.Config, logger *slog.Logger) *classifier.TextClassifier {
	vectorizerPath := cfg.ModelPath(cfg.Models.TextVectorizer)
	modelPath := cfg.ModelPath(cfg.Models.TextModel)
	text, err := classifier.LoadTextClassifier(vectorizerPath, modelPath)
	if err != nil {
		logger.Warn("text diagnosis unavailable", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("text diagnosis model loaded", slog.String("model", modelPath))
	return text
}

func selectGenerationBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) generator.Backend {
	if key := cfg.GenerationAPIKey(); key != "" {
		gemini, err := generator.NewGemini(ctx, cfg.Generation, key)
		if err == nil {
			logger.Info("hosted generation enabled", slog.String("model", cfg.Generation.Model))
			return gemini
		}
		logger.Warn("hosted generation unavailable", slog.String("error", err.Error()))
	}

	path := cfg.ModelPath(cfg.Models.GenerationModel)
	local, err := generator.LoadLocal(path)
	if err == nil {
		logger.Info("local generation model loaded", slog.String("path", path))
		return local
	}
	logger.Warn("local generation unavailable, serving static responses",
		slog.String("path", path), slog.String("error", err.Error()))
	return generator.NewStatic()
}
