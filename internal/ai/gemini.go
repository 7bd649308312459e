package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/rasben/openai-zulip/internal/config"
)

// geminiClient implements Client using Google's Gemini API. System
// messages become the system instruction; user and assistant turns map to
// the user and model roles.
type geminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	log         *slog.Logger
}

func newGeminiClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (*geminiClient, error) {
	logger := log.With("component", "gemini_client")

	var client *genai.Client
	if cfg.Token != "" {
		var err error
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Token,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create genai client: %w", err)
		}
	}

	return &geminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		log:         logger,
	}, nil
}

func (c *geminiClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.client == nil {
		c.log.WarnContext(ctx, "Completion requested without an API key configured")
		return "", fmt.Errorf("%w: missing API key", ErrUnavailable)
	}

	var systemParts []string
	var contents []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			systemParts = append(systemParts, m.Content)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: &c.temperature,
	}
	if len(systemParts) > 0 {
		genCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(systemParts, "\n\n")}},
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(timeoutCtx, c.model, contents, genCfg)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		c.log.ErrorContext(ctx, "Gemini response missing candidates or content")
		return "", fmt.Errorf("%w: empty response content", ErrUnavailable)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", ErrUnavailable)
	}

	return text, nil
}
