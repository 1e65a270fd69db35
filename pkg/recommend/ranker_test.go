package recommend

import (
	"context"
	"testing"

	"sermon-advisor-be/internal/entity"

	"github.com/google/uuid"
)

func rankerCandidates(similarities ...float64) []Candidate {
	out := make([]Candidate, len(similarities))
	for i, s := range similarities {
		out[i] = Candidate{
			Teaching: &entity.Teaching{
				Id:          uuid.New(),
				Title:       "Teaching",
				Description: "Description",
			},
			Similarity: s,
		}
	}
	return out
}

func TestRanker_FiltersAndSortsByRelevance(t *testing.T) {
	provider := &fakeLLM{responses: []string{
		`[{"index": 0, "score": 0.65, "reason": "tangential"},
		  {"index": 1, "score": 0.95, "reason": "direct"},
		  {"index": 2, "score": 0.80, "reason": "major theme"}]`,
	}}
	ranker := NewRanker(provider, noopLogger{}, 0.7)

	candidates := rankerCandidates(0.9, 0.8, 0.7)
	ranked, degraded := ranker.Rank(context.Background(), "faith", candidates)

	if degraded {
		t.Fatal("degraded = true, want false")
	}
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2 (score 0.65 filtered)", len(ranked))
	}
	if ranked[0].Relevance != 0.95 || ranked[1].Relevance != 0.80 {
		t.Errorf("relevance order = [%v %v], want [0.95 0.80]", ranked[0].Relevance, ranked[1].Relevance)
	}
	if ranked[0].Rationale != "direct" {
		t.Errorf("rationale = %q, want %q", ranked[0].Rationale, "direct")
	}
}

func TestRanker_TieBrokenBySimilarity(t *testing.T) {
	provider := &fakeLLM{responses: []string{
		`[{"index": 0, "score": 0.8}, {"index": 1, "score": 0.8}]`,
	}}
	ranker := NewRanker(provider, noopLogger{}, 0.7)

	candidates := rankerCandidates(0.7, 0.9)
	ranked, _ := ranker.Rank(context.Background(), "hope", candidates)

	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].Similarity != 0.9 {
		t.Errorf("tie not broken by similarity: first has similarity %v, want 0.9", ranked[0].Similarity)
	}
}

func TestRanker_OmittedCandidateDropped(t *testing.T) {
	provider := &fakeLLM{responses: []string{
		`[{"index": 0, "score": 0.9}]`,
	}}
	ranker := NewRanker(provider, noopLogger{}, 0.7)

	candidates := rankerCandidates(0.9, 0.8)
	ranked, degraded := ranker.Rank(context.Background(), "grace", candidates)

	if degraded {
		t.Fatal("degraded = true, want false")
	}
	if len(ranked) != 1 {
		t.Fatalf("len = %d, want 1 (omitted candidate treated as zero)", len(ranked))
	}
}

func TestRanker_FallbackOnModelFailure(t *testing.T) {
	provider := &fakeLLM{responses: []string{""}} // always errors
	ranker := NewRanker(provider, noopLogger{}, 0.7)

	candidates := rankerCandidates(0.9, 0.5, 0.3)
	ranked, degraded := ranker.Rank(context.Background(), "healing", candidates)

	if !degraded {
		t.Fatal("degraded = false, want true")
	}
	if len(ranked) != len(candidates) {
		t.Fatalf("len = %d, want %d (fallback is unfiltered)", len(ranked), len(candidates))
	}
	for i := range ranked {
		if ranked[i].Similarity != candidates[i].Similarity {
			t.Errorf("order changed at %d: similarity %v, want %v", i, ranked[i].Similarity, candidates[i].Similarity)
		}
		if ranked[i].Relevance != ranked[i].Similarity {
			t.Errorf("fallback relevance = %v, want similarity %v", ranked[i].Relevance, ranked[i].Similarity)
		}
	}
}

func TestRanker_RetriesOnceThenSucceeds(t *testing.T) {
	provider := &fakeLLM{responses: []string{
		"not json at all",
		`[{"index": 0, "score": 0.9}]`,
	}}
	ranker := NewRanker(provider, noopLogger{}, 0.7)

	ranked, degraded := ranker.Rank(context.Background(), "joy", rankerCandidates(0.8))

	if degraded {
		t.Fatal("degraded = true, want false after successful retry")
	}
	if len(ranked) != 1 {
		t.Fatalf("len = %d, want 1", len(ranked))
	}
	if got := provider.calls.Load(); got != 2 {
		t.Errorf("llm calls = %d, want 2", got)
	}
}

func TestRanker_EmptyInput(t *testing.T) {
	ranker := NewRanker(&fakeLLM{}, noopLogger{}, 0.7)
	ranked, degraded := ranker.Rank(context.Background(), "peace", nil)
	if len(ranked) != 0 || degraded {
		t.Errorf("got (%d, %v), want (0, false)", len(ranked), degraded)
	}
}

func TestParseRankResponse(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		count     int
		wantLen   int
		wantErr   bool
		wantScore map[int]float64
	}{
		{
			name:      "bare array",
			response:  `[{"index": 0, "score": 0.8}]`,
			count:     1,
			wantLen:   1,
			wantScore: map[int]float64{0: 0.8},
		},
		{
			name:      "code fenced",
			response:  "```json\n[{\"index\": 0, \"score\": 0.9}]\n```",
			count:     1,
			wantLen:   1,
			wantScore: map[int]float64{0: 0.9},
		},
		{
			name:      "wrapped in prose",
			response:  `Here are the scores: [{"index": 0, "score": 0.75}] Hope that helps!`,
			count:     1,
			wantLen:   1,
			wantScore: map[int]float64{0: 0.75},
		},
		{
			name:     "out of range index dropped",
			response: `[{"index": 5, "score": 0.9}, {"index": 0, "score": 0.8}]`,
			count:    2,
			wantLen:  1,
		},
		{
			name:      "duplicate index keeps first",
			response:  `[{"index": 0, "score": 0.9}, {"index": 0, "score": 0.1}]`,
			count:     1,
			wantLen:   1,
			wantScore: map[int]float64{0: 0.9},
		},
		{
			name:      "scores clamped to unit range",
			response:  `[{"index": 0, "score": 1.5}, {"index": 1, "score": -0.2}]`,
			count:     2,
			wantLen:   2,
			wantScore: map[int]float64{0: 1.0, 1: 0.0},
		},
		{
			name:     "no array",
			response: "I cannot rank these.",
			count:    1,
			wantErr:  true,
		},
		{
			name:     "malformed json",
			response: `[{"index": 0, "score":}]`,
			count:    1,
			wantErr:  true,
		},
		{
			name:     "only unusable indices",
			response: `[{"index": 9, "score": 0.9}]`,
			count:    1,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := parseRankResponse(tt.response, tt.count)

			if tt.wantErr {
				if err == nil {
					t.Fatal("err = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if len(scores) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(scores), tt.wantLen)
			}
			for idx, want := range tt.wantScore {
				if got := scores[idx].Score; got != want {
					t.Errorf("score[%d] = %v, want %v", idx, got, want)
				}
			}
		})
	}
}
