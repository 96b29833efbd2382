package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hunterjsb/scorebot/internal/metrics"
	"github.com/tidwall/gjson"
)

const anthropicProvider = "anthropic"

// PromptSuffix is appended to every !claude prompt
const PromptSuffix = "\n\nBe conversational but professional. No titles or headers."

// Anthropic completes prompts with the Messages API
type Anthropic struct {
	client    *anthropic.Client
	log       *slog.Logger
	model     anthropic.Model
	maxTokens int64
	suffix    string
}

// AnthropicOptions configures an Anthropic provider
type AnthropicOptions struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int64
	// Suffix is appended to the prompt
	Suffix string
	// MaxRetries bounds the SDK's own retries; zero disables them
	MaxRetries int
}

// NewAnthropic creates an Anthropic provider. A provider without an API key
// fails every request with ErrNotConfigured.
func NewAnthropic(log *slog.Logger, opts AnthropicOptions) *Anthropic {
	a := &Anthropic{
		log:       log.With("provider", anthropicProvider),
		model:     anthropic.Model(opts.Model),
		maxTokens: opts.MaxTokens,
		suffix:    opts.Suffix,
	}
	if a.maxTokens <= 0 {
		a.maxTokens = 1024
	}
	if opts.APIKey != "" {
		reqOpts := []option.RequestOption{
			option.WithAPIKey(opts.APIKey),
			option.WithMaxRetries(opts.MaxRetries),
		}
		if opts.BaseURL != "" {
			reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
		}
		client := anthropic.NewClient(reqOpts...)
		a.client = &client
	}
	return a
}

func (a *Anthropic) Name() string { return anthropicProvider }

// Complete sends prompt, with the configured suffix, as a single user message
func (a *Anthropic) Complete(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		metrics.LLMRequestsTotal.WithLabelValues(anthropicProvider, result(err)).Inc()
	}()

	if a.client == nil {
		return "", ErrNotConfigured
	}

	start := time.Now()
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt + a.suffix)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			message := gjson.Get(apiErr.RawJSON(), "error.message").String()
			if message == "" {
				message = http.StatusText(apiErr.StatusCode)
			}
			return "", &APIError{Provider: anthropicProvider, StatusCode: apiErr.StatusCode, Message: message}
		}
		return "", fmt.Errorf("anthropic API error: %w", err)
	}
	a.log.Debug("completion finished", "duration", time.Since(start), "stop_reason", msg.StopReason)

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
