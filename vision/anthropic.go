package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"ga4oracle/retry"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const visionMaxRetries = 3

// AnthropicService implements Service against the Anthropic Messages
// API, sending the screenshot as a base64-encoded image block
// alongside the text prompt.
type AnthropicService struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicService builds a Service backed by the given API key
// and model name (e.g. "claude-sonnet-4-5").
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

func (s *AnthropicService) Analyze(ctx context.Context, image []byte, prompt string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(image)

	message, err := retry.Do(ctx, visionMaxRetries, isRetryableVisionError, func() (*anthropic.Message, error) {
		return s.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     s.model,
			MaxTokens: 1024,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewImageBlockBase64("image/png", encoded),
					anthropic.NewTextBlock(prompt),
				),
			},
		})
	})
	if err != nil {
		return "", fmt.Errorf("vision: anthropic request failed: %w", err)
	}

	var out string
	for _, block := range message.Content {
		if text := block.AsText(); text.Text != "" {
			out += text.Text
		}
	}
	if out == "" {
		return "", fmt.Errorf("vision: anthropic response had no text content")
	}
	return out, nil
}

// isRetryableVisionError reports whether err looks like a transient
// rate-limit or overload response worth retrying. The SDK surfaces
// these as formatted HTTP errors rather than a typed sentinel, so this
// matches on the response text the same way the status appears in it.
func isRetryableVisionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "rate_limit") || strings.Contains(msg, "overloaded")
}
