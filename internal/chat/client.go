// Package chat implements the conversational estimate flow on top of the
// Anthropic Messages API: a streaming chat endpoint that can hand back
// structured tool calls, and a non-blocking reply suggestion endpoint.
package chat

import (
	"context"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
)

// AnthropicMessager is the slice of the Anthropic client this package uses.
// *anthropic.Client.Messages satisfies it; tests substitute a mock.
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
	NewStreaming(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) *ssestream.Stream[anthropic.MessageStreamEventUnion]
}

// NewMessager creates the production Anthropic client.
func NewMessager(apiKey string) AnthropicMessager {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &client.Messages
}
