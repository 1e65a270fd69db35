package recommend

import (
	"context"
	"fmt"
	"strings"

	"sermon-advisor-be/internal/constant"
	"sermon-advisor-be/internal/pkg/logger"
	"sermon-advisor-be/pkg/llm"
)

// ReplyGenerator writes the short pastoral message that accompanies a result
// list. The model call is best-effort: any failure falls back to a fixed warm
// reply so the recommendations still go out.
type ReplyGenerator struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewReplyGenerator(provider llm.LLMProvider, log logger.ILogger) *ReplyGenerator {
	return &ReplyGenerator{llmProvider: provider, logger: log}
}

// ForResults generates the intro message for a fresh result page.
func (g *ReplyGenerator) ForResults(ctx context.Context, topic string, count int) string {
	prompt := fmt.Sprintf(constant.PastoralReplyPromptV1, topic, count)

	response, err := g.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.7), llm.WithMaxTokens(120))
	if err != nil {
		g.logger.Warn("reply", "reply generation failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.FallbackReplyFound
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return constant.FallbackReplyFound
	}
	return response
}
