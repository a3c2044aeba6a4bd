package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"go.uber.org/zap"
)

// AnthropicClient is a Client backed by the Anthropic Messages API. The API
// key comes from the ANTHROPIC_API_KEY environment variable via the SDK's
// default option chain.
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

// NewAnthropicClient creates a client for the given model.
//
// Precondition: model is non-empty and maxTokens >= 1; a nil logger is
// replaced by a no-op logger.
func NewAnthropicClient(model string, maxTokens int, logger *zap.Logger) *AnthropicClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnthropicClient{
		client:    anthropic.NewClient(),
		model:     model,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Respond sends one message exchange and concatenates the text blocks of the
// reply.
func (c *AnthropicClient) Respond(ctx context.Context, system, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("ai: message request: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	c.logger.Debug("dm response received",
		zap.String("model", c.model),
		zap.Int("chars", b.Len()),
	)
	return b.String(), nil
}
