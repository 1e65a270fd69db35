package openai

import (
	"context"
	"fmt"

	"sermon-advisor-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

// Provider wraps the OpenAI chat-completion API.
type Provider struct {
	client *goopenai.Client
	model  string
}

var _ llm.LLMProvider = (*Provider)(nil)

func NewOpenAIProvider(apiKey, model string) *Provider {
	if model == "" {
		model = goopenai.GPT4oMini
	}
	return &Provider{
		client: goopenai.NewClient(apiKey),
		model:  model,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, m := range history {
		messages[i] = goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	req := goopenai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: goopenai.ChatMessageRoleUser, Content: prompt}}, opts...)
}
