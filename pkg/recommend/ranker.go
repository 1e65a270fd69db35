package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"sermon-advisor-be/internal/constant"
	"sermon-advisor-be/internal/pkg/logger"
	"sermon-advisor-be/pkg/llm"
)

const rankerAttempts = 2

// Ranker grades retrieval candidates with the LLM and keeps only the ones
// above the relevance threshold. A ranking failure never fails the request:
// the candidates come back in their original similarity order, unfiltered,
// with degraded=true so the caller can flag reduced quality.
type Ranker struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
	threshold   float64
}

func NewRanker(provider llm.LLMProvider, log logger.ILogger, threshold float64) *Ranker {
	if threshold <= 0 {
		threshold = 0.7
	}
	return &Ranker{
		llmProvider: provider,
		logger:      log,
		threshold:   threshold,
	}
}

// Rank returns candidates ordered by relevance descending (similarity breaks
// ties) with scores below the threshold removed. The degraded return reports
// whether the ranking step was skipped due to model failure.
func (r *Ranker) Rank(ctx context.Context, topic string, candidates []Candidate) (ranked []Candidate, degraded bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	scores, err := r.scoreCandidates(ctx, topic, candidates)
	if err != nil {
		r.logger.Warn("ranker", "llm ranking failed, falling back to similarity order", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
		fallback := make([]Candidate, len(candidates))
		copy(fallback, candidates)
		for i := range fallback {
			fallback[i].Relevance = fallback[i].Similarity
		}
		return fallback, true
	}

	ranked = make([]Candidate, 0, len(candidates))
	for i, c := range candidates {
		// A candidate the model skipped counts as zero relevance.
		s, ok := scores[i]
		if !ok || s.Score < r.threshold {
			continue
		}
		c.Relevance = s.Score
		c.Rationale = s.Reason
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Relevance != ranked[j].Relevance {
			return ranked[i].Relevance > ranked[j].Relevance
		}
		return ranked[i].Similarity > ranked[j].Similarity
	})

	r.logger.Debug("ranker", "ranked candidates", map[string]interface{}{
		"topic":    topic,
		"in":       len(candidates),
		"kept":     len(ranked),
		"degraded": false,
	})
	return ranked, false
}

type scoredItem struct {
	Index  int     `json:"index"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

func (r *Ranker) scoreCandidates(ctx context.Context, topic string, candidates []Candidate) (map[int]scoredItem, error) {
	var sb strings.Builder
	for i, c := range candidates {
		desc := c.Teaching.Description
		if len(desc) > 300 {
			desc = desc[:300] + "..."
		}
		fmt.Fprintf(&sb, "%d. %s - %s\n", i, c.Teaching.Title, desc)
	}
	prompt := fmt.Sprintf(constant.RankTeachingsPromptV1, topic, sb.String())

	var lastErr error
	for attempt := 1; attempt <= rankerAttempts; attempt++ {
		response, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.1))
		if err != nil {
			lastErr = err
			continue
		}

		items, err := parseRankResponse(response, len(candidates))
		if err != nil {
			lastErr = err
			continue
		}
		return items, nil
	}
	return nil, lastErr
}

// parseRankResponse parses the model's JSON array, tolerating code fences and
// surrounding chatter. Out-of-range indices are dropped, scores are clamped to
// [0, 1], and a duplicate index keeps its first score.
func parseRankResponse(response string, candidateCount int) (map[int]scoredItem, error) {
	cleaned := stripCodeFences(response)

	// Some models wrap the array in prose. Cut to the outermost brackets.
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in ranking response")
	}

	var items []scoredItem
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("parse ranking response: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty ranking response")
	}

	scores := make(map[int]scoredItem, len(items))
	for _, item := range items {
		if item.Index < 0 || item.Index >= candidateCount {
			continue
		}
		if _, exists := scores[item.Index]; exists {
			continue
		}
		if item.Score < 0 {
			item.Score = 0
		}
		if item.Score > 1 {
			item.Score = 1
		}
		scores[item.Index] = item
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("ranking response had no usable indices")
	}
	return scores, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
