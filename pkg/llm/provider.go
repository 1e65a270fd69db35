package llm

import "context"

// Message is a single turn in a conversation, provider-agnostic.
// Role is one of "system", "user" or "assistant".
type Message struct {
	Role    string
	Content string
}

// Options carries per-call generation parameters. Providers fall back to
// their own defaults for any zero value.
type Options struct {
	Temperature float64
	MaxTokens   int
}

type Option func(*Options)

func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

// LLMProvider abstracts a chat-completion backend. Ranking and reply
// generation talk to the model exclusively through this interface, so the
// backing vendor can be swapped by configuration.
type LLMProvider interface {
	Chat(ctx context.Context, history []Message, opts ...Option) (string, error)

	// Generate is a single-prompt convenience wrapper around Chat.
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}
