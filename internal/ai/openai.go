package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/rasben/openai-zulip/internal/config"
)

// openaiClient implements Client using OpenAI's chat completion API or a
// compatible service.
type openaiClient struct {
	client      *gopenai.Client
	model       string
	temperature float32
	timeout     time.Duration
	log         *slog.Logger
}

func newOpenAIClient(cfg config.AIConfig, log *slog.Logger) *openaiClient {
	// A missing token is not a construction error; the backend reports
	// itself unavailable at call time instead.
	var client *gopenai.Client
	if cfg.Token != "" {
		clientCfg := gopenai.DefaultConfig(cfg.Token)
		clientCfg.BaseURL = cfg.BaseURL
		client = gopenai.NewClientWithConfig(clientCfg)
	}

	return &openaiClient{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		log:         log.With("component", "openai_client"),
	}
}

// Complete sends the message list to the chat completion endpoint and
// returns the first choice's text.
func (c *openaiClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.client == nil {
		c.log.WarnContext(ctx, "Completion requested without an API token configured")
		return "", fmt.Errorf("%w: missing API token", ErrUnavailable)
	}

	chatMessages := make([]gopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, gopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	resp, err := c.client.CreateChatCompletion(timeoutCtx, gopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		Temperature: c.temperature,
	})
	if err != nil {
		c.log.ErrorContext(ctx, "Chat completion failed", "error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.log.ErrorContext(ctx, "Chat completion returned no choices")
		return "", fmt.Errorf("%w: no choices in response", ErrUnavailable)
	}

	c.log.DebugContext(ctx, "Chat completion succeeded",
		"messages", len(messages),
		"tokens", resp.Usage.TotalTokens,
		"duration", time.Since(startTime))

	return resp.Choices[0].Message.Content, nil
}
