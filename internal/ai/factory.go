package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rasben/openai-zulip/internal/config"
)

// NewClient creates and returns a Client based on the provided
// configuration. It acts as a factory, selecting either the OpenAI or
// Gemini implementation.
func NewClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Client, error) {
	log.Info("Initializing AI client", "backend", cfg.Backend, "model", cfg.Model)

	switch cfg.Backend {
	case "openai":
		return newOpenAIClient(cfg, log), nil
	case "gemini":
		return newGeminiClient(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown AI backend specified: %s", cfg.Backend)
	}
}
