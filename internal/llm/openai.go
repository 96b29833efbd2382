package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hunterjsb/scorebot/internal/metrics"
	"github.com/sashabaranov/go-openai"
)

const openAIProvider = "openai"

// OpenAI completes prompts with the chat completions API
type OpenAI struct {
	client      *openai.Client
	log         *slog.Logger
	model       string
	maxTokens   int
	temperature float32
}

// OpenAIOptions configures an OpenAI provider
type OpenAIOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// NewOpenAI creates an OpenAI provider. A provider without an API key is
// returned anyway and fails every request with ErrNotConfigured.
func NewOpenAI(log *slog.Logger, opts OpenAIOptions) *OpenAI {
	o := &OpenAI{
		log:         log.With("provider", openAIProvider),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: float32(opts.Temperature),
	}
	if o.model == "" {
		o.model = openai.GPT4oMini
	}
	if opts.APIKey != "" {
		cfg := openai.DefaultConfig(opts.APIKey)
		if opts.BaseURL != "" {
			cfg.BaseURL = opts.BaseURL
		}
		o.client = openai.NewClientWithConfig(cfg)
	}
	return o
}

func (o *OpenAI) Name() string { return openAIProvider }

// Complete sends prompt as a single user message
func (o *OpenAI) Complete(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		metrics.LLMRequestsTotal.WithLabelValues(openAIProvider, result(err)).Inc()
	}()

	if o.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   o.maxTokens,
			Temperature: o.temperature,
		},
	)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Provider: openAIProvider, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", fmt.Errorf("ChatCompletion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	o.log.Debug("completion finished", "model", resp.Model, "total_tokens", resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}
