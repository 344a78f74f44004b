package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

// OpenAIAsker talks to an OpenAI-compatible chat completion endpoint.
type OpenAIAsker struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIAsker builds a client from OPENAI_API_KEY and, optionally,
// OPENAI_MODEL and OPENAI_BASE_URL. A missing key is an error; callers
// are expected to fall back to the deterministic path.
func NewOpenAIAsker(logger *slog.Logger) (*OpenAIAsker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", ErrExternalService)
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	logger.Debug("assistant client ready", "model", model)
	return &OpenAIAsker{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}, nil
}

func (o *OpenAIAsker) Ask(ctx context.Context, userMessage string, network []ConnectionSummary, history []Message) (string, error) {
	msgs := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(network)},
	}
	for _, h := range history {
		role := openai.ChatMessageRoleUser
		if h.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: h.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMessage})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: msgs,
	})
	if err != nil {
		o.logger.Error("assistant call failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if len(resp.Choices) == 0 {
		o.logger.Warn("assistant returned no choices")
		return "", fmt.Errorf("%w: empty response", ErrExternalService)
	}
	return resp.Choices[0].Message.Content, nil
}
