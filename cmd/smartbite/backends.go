package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/smartbite/internal/chat"
	"github.com/vbonduro/smartbite/internal/config"
	"github.com/vbonduro/smartbite/internal/detect"
	claudedetect "github.com/vbonduro/smartbite/internal/detect/claude"
	ollamadetect "github.com/vbonduro/smartbite/internal/detect/ollama"
	"github.com/vbonduro/smartbite/internal/detect/yolo"
	"github.com/vbonduro/smartbite/internal/recipe"
	clauderecipe "github.com/vbonduro/smartbite/internal/recipe/claude"
	"github.com/vbonduro/smartbite/internal/recipe/cohere"
	"github.com/vbonduro/smartbite/internal/recipe/gemini"
	ollamarecipe "github.com/vbonduro/smartbite/internal/recipe/ollama"
	"github.com/vbonduro/smartbite/internal/stockimage"
	"github.com/vbonduro/smartbite/internal/telemetry"
)

func newDetector(cfg *config.Config, logger *slog.Logger) (detect.Detector, error) {
	switch cfg.DetectorBackend {
	case "yolo":
		logger.Info("using YOLO detector backend", "host", cfg.YOLOHost, "model", cfg.YOLOModel)
		return yolo.NewYOLODetector(cfg.YOLOHost, cfg.YOLOModel), nil
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Warn("CLAUDE_API_KEY is not set; detection requests will fail")
		}
		logger.Info("using Claude detector backend", "model", cfg.ClaudeModel)
		return claudedetect.NewClaudeDetector(cfg.ClaudeAPIKey, cfg.ClaudeModel), nil
	case "ollama":
		logger.Info("using Ollama detector backend", "model", cfg.OllamaVisionModel)
		return ollamadetect.NewOllamaDetector(cfg.OllamaHost, cfg.OllamaVisionModel), nil
	default:
		return nil, fmt.Errorf("unknown DETECTOR_BACKEND %q", cfg.DetectorBackend)
	}
}

// newGenerator builds the configured generator. A missing API key is not an
// error here; the first generation call reports it to the user instead.
func newGenerator(cfg *config.Config, logger *slog.Logger) (recipe.Generator, error) {
	switch cfg.GeneratorBackend {
	case "cohere":
		if cfg.CohereAPIKey == "" {
			logger.Warn("COHERE_API_KEY is not set; recipe requests will fail")
		}
		logger.Info("using Cohere generator backend", "model", cfg.CohereModel)
		return cohere.NewCohereGenerator(cfg.CohereAPIKey, cfg.CohereModel), nil
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Warn("CLAUDE_API_KEY is not set; recipe requests will fail")
		}
		logger.Info("using Claude generator backend", "model", cfg.ClaudeModel)
		return clauderecipe.NewClaudeGenerator(cfg.ClaudeAPIKey, cfg.ClaudeModel), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set; recipe requests will fail")
		}
		logger.Info("using Gemini generator backend", "model", cfg.GeminiModel)
		return gemini.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case "ollama":
		logger.Info("using Ollama generator backend", "model", cfg.OllamaModel)
		return ollamarecipe.NewOllamaGenerator(cfg.OllamaHost, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unknown GENERATOR_BACKEND %q", cfg.GeneratorBackend)
	}
}

// newAssistant wires the configured backends into an assistant. The returned
// cleanup flushes telemetry and must be deferred.
func newAssistant(ctx context.Context, cfg *config.Config, uploads chat.ImageSource, logger *slog.Logger) (*chat.Assistant, func(), error) {
	detector, err := newDetector(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	generator, err := newGenerator(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	tel := telemetry.Noop()
	cleanup := func() {}
	if cfg.TelemetryDir != "" {
		tel, cleanup, err = telemetry.New(ctx, cfg.TelemetryDir, version)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		logger.Info("telemetry enabled", "dir", cfg.TelemetryDir)
	}

	images := stockimage.New(cfg.StockImageURL, cfg.StockImageValidate, logger)
	return chat.NewAssistant(detector, generator, images, uploads, tel, logger), cleanup, nil
}
