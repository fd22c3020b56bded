package chat

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"antares_backend/platform/apperr"
	"antares_backend/platform/config"
	"antares_backend/platform/logger"

	anthropic "github.com/anthropics/anthropic-sdk-go"
)

const (
	// maxMessages caps the history a client may submit.
	maxMessages = 20
	// suggestHistorySize is how much trailing context the suggestion model sees.
	suggestHistorySize = 4
	// maxSuggestions caps the quick replies returned to the UI.
	maxSuggestions = 4
)

// Message is one turn of the conversation as submitted by the client.
type Message struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// Event is one unit of the streamed chat response.
type Event struct {
	Type      string          // "delta" or "tool_call"
	Text      string          // set for delta events
	ToolName  string          // set for tool_call events
	ToolInput json.RawMessage // set for tool_call events
}

// Service drives the conversational flow.
type Service struct {
	messages     AnthropicMessager
	chatModel    string
	suggestModel string
	log          *logger.Logger
}

// New creates the chat service. A nil messager means the Anthropic API key is
// absent; the chat endpoint reports a configuration failure and the
// suggestion endpoint degrades to empty results.
func New(messages AnthropicMessager, cfg config.AIConfig, log *logger.Logger) *Service {
	return &Service{
		messages:     messages,
		chatModel:    cfg.GetChatModel(),
		suggestModel: cfg.GetSuggestModel(),
		log:          log,
	}
}

// Configured reports whether the Anthropic client is available.
func (s *Service) Configured() bool {
	return s.messages != nil
}

// Stream runs one conversation turn, invoking emit for every text delta and
// for each tool call the model produced. Tool payloads are forwarded verbatim;
// they stay untrusted until the submission pipeline reconciles them.
func (s *Service) Stream(ctx context.Context, history []Message, emit func(Event) error) error {
	if s.messages == nil {
		return apperr.Configuration("conversation service is not configured").WithOp("chat.Stream")
	}
	if len(history) == 0 {
		return apperr.Validation("messages must not be empty").WithOp("chat.Stream")
	}
	if len(history) > maxMessages {
		return apperr.Validation("conversation too long").WithOp("chat.Stream")
	}

	stream := s.messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.chatModel),
		MaxTokens: 2048,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:  toMessageParams(history),
		Tools:     conversationTools(),
	})

	var message anthropic.Message
	for stream.Next() {
		event := stream.Current()
		if err := message.Accumulate(event); err != nil {
			return apperr.Upstream("failed to read model response", err).WithOp("chat.Stream")
		}

		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if delta, ok := eventVariant.Delta.AsAny().(anthropic.TextDelta); ok {
				if err := emit(Event{Type: "delta", Text: delta.Text}); err != nil {
					return err
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return apperr.Upstream("conversation service failed", err).WithOp("chat.Stream")
	}

	// Tool payloads complete only once the stream has finished.
	for _, block := range message.Content {
		if variant, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			if err := emit(Event{
				Type:      "tool_call",
				ToolName:  variant.Name,
				ToolInput: block.Input,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// jsonArrayRe extracts the first JSON array from a model reply that may be
// wrapped in prose or code fences.
var jsonArrayRe = regexp.MustCompile(`(?s)\[.*?\]`)

// Suggest returns up to four quick replies for the given conversation tail.
// Failures of any kind degrade to an empty result; suggestions are an
// enhancement and must never block the UI.
func (s *Service) Suggest(ctx context.Context, history []Message) []string {
	if s.messages == nil || len(history) == 0 {
		return []string{}
	}
	if len(history) > suggestHistorySize {
		history = history[len(history)-suggestHistorySize:]
	}

	resp, err := s.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.suggestModel),
		MaxTokens: 256,
		System:    []anthropic.TextBlockParam{{Text: suggestSystemPrompt}},
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(transcript(history)))},
	})
	if err != nil {
		s.log.AIError("suggest", err)
		return []string{}
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	raw := jsonArrayRe.FindString(sb.String())
	if raw == "" {
		return []string{}
	}
	var candidates []string
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return []string{}
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "" {
			continue
		}
		suggestions = append(suggestions, trimmed)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

func toMessageParams(history []Message) []anthropic.MessageParam {
	params := make([]anthropic.MessageParam, 0, len(history))
	for _, m := range history {
		if m.Role == "assistant" {
			params = append(params, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		} else {
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return params
}

func transcript(history []Message) string {
	var sb strings.Builder
	for _, m := range history {
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
