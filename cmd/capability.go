package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/nextstep/internal/ai"
	"github.com/spigell/nextstep/internal/ai/gemini"
	"github.com/spigell/nextstep/internal/secrets"
)

// newCapability builds the language model capability once for the process.
// A missing API key is not an error: the pipeline then runs on heuristics only.
func newCapability(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Capability, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("language model disabled", zap.String("reason", "ai.enabled is false"))
		return ai.Unavailable(), nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	geminiCfg := cfg.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiCfg.APIKey,
		File:  geminiCfg.APIKeyFile,
		Env:   "GOOGLE_API_KEY",
	})
	if errors.Is(err, secrets.ErrNotConfigured) {
		logger.Warn("language model unavailable, using heuristics only",
			zap.String("hint", "set GOOGLE_API_KEY or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
		return ai.Unavailable(), nil
	}
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model, geminiCfg.Temperature)
	if err != nil {
		return nil, fmt.Errorf("building gemini generator: %w", err)
	}

	logger.Info("language model enabled",
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
		zap.Duration("timeout", cfg.Timeout),
	)

	return gemini.NewAdvisor(generator, cfg.Timeout, geminiCfg.MaxLogLength, logger), nil
}
