package recommend

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func buildEngine(rankerLLM, replyLLM *fakeLLM, embedder *fakeEmbedder, factory *fakeRepoFactory, cache ResultCache) *Engine {
	log := noopLogger{}
	return NewEngine(
		NewIntentParser(5, 20),
		NewRetriever(embedder, factory, log, 20),
		NewRanker(rankerLLM, log, 0.7),
		NewReplyGenerator(replyLLM, log),
		cache,
		NewSessionStore(time.Hour),
		factory,
		log,
		5*time.Second,
	)
}

// scoreAll builds a ranking response scoring the first `high` indices at 0.95,
// 0.90, ... and the rest at 0.1.
func scoreAll(total, high int) string {
	parts := make([]string, 0, total)
	for i := 0; i < total; i++ {
		score := 0.1
		if i < high {
			score = 0.95 - float64(i)*0.05
		}
		parts = append(parts, fmt.Sprintf(`{"index": %d, "score": %.2f}`, i, score))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func TestEngine_FullSuccess(t *testing.T) {
	teachings, embeddings, _ := corpus(10, 0.91)
	factory := &fakeRepoFactory{uow: &fakeUnitOfWork{teachings: teachings, embeddings: embeddings}}
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2}}
	engine := buildEngine(
		&fakeLLM{responses: []string{scoreAll(10, 4)}},
		&fakeLLM{responses: []string{"May these encourage you."}},
		embedder, factory,
		NewMemoryResultCache(time.Hour),
	)

	outcome := engine.Advise(context.Background(), "user-1", "3 sermons on healing")

	if outcome.Status != StatusResults {
		t.Fatalf("status = %s, want %s", outcome.Status, StatusResults)
	}
	if len(outcome.Items) != 3 {
		t.Fatalf("items = %d, want exactly the requested 3", len(outcome.Items))
	}
	if !outcome.HasMore {
		t.Error("HasMore = false, want true with a fourth relevant candidate held back")
	}
	if outcome.Reply != "May these encourage you." {
		t.Errorf("reply = %q", outcome.Reply)
	}
	for i := 1; i < len(outcome.Items); i++ {
		if outcome.Items[i].Relevance > outcome.Items[i-1].Relevance {
			t.Errorf("items not in descending relevance at %d", i)
		}
	}
	if outcome.Items[0].Teaching.Title == "" {
		t.Error("items not hydrated with record fields")
	}

	// the held-back fourth relevant candidate arrives on "more"
	more := engine.Advise(context.Background(), "user-1", "more")
	if more.Status != StatusResults {
		t.Fatalf("more status = %s, want %s", more.Status, StatusResults)
	}
	if len(more.Items) != 1 {
		t.Fatalf("more items = %d, want 1", len(more.Items))
	}
	for _, earlier := range outcome.Items {
		if more.Items[0].Teaching.Id == earlier.Teaching.Id {
			t.Error("continuation repeated an already-served teaching")
		}
	}
	if more.HasMore {
		t.Error("more.HasMore = true, want false after the list is drained")
	}
}

func TestEngine_CacheHitIsIdempotent(t *testing.T) {
	teachings, embeddings, _ := corpus(6, 0.9)
	factory := &fakeRepoFactory{uow: &fakeUnitOfWork{teachings: teachings, embeddings: embeddings}}
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	engine := buildEngine(
		&fakeLLM{responses: []string{scoreAll(6, 6)}},
		&fakeLLM{responses: []string{"Blessings."}},
		embedder, factory,
		NewMemoryResultCache(time.Hour),
	)

	first := engine.Advise(context.Background(), "user-1", "sermons on faith")
	second := engine.Advise(context.Background(), "user-1", "Sermons on FAITH")

	if first.Status != StatusResults || second.Status != StatusResults {
		t.Fatalf("statuses = %s, %s", first.Status, second.Status)
	}
	if len(first.Items) != len(second.Items) {
		t.Fatalf("item counts differ: %d vs %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i].Teaching.Id != second.Items[i].Teaching.Id {
			t.Errorf("ordering differs at %d", i)
		}
	}

	// the second call must not re-run embedding or vector search
	if got := embedder.calls.Load(); got != 1 {
		t.Errorf("embedding calls = %d, want 1", got)
	}
	if got := embeddings.searchCalls.Load(); got != 1 {
		t.Errorf("vector searches = %d, want 1", got)
	}
}

func TestEngine_CacheExpiryRerunsPipeline(t *testing.T) {
	teachings, embeddings, _ := corpus(4, 0.9)
	factory := &fakeRepoFactory{uow: &fakeUnitOfWork{teachings: teachings, embeddings: embeddings}}
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	engine := buildEngine(
		&fakeLLM{responses: []string{scoreAll(4, 4)}},
		&fakeLLM{responses: []string{"Blessings."}},
		embedder, factory,
		NewMemoryResultCache(20*time.Millisecond),
	)

	engine.Advise(context.Background(), "user-1", "sermons on faith")
	time.Sleep(40 * time.Millisecond)
	engine.Advise(context.Background(), "user-1", "sermons on faith")

	if got := embeddings.searchCalls.Load(); got != 2 {
		t.Errorf("vector searches = %d, want 2 after TTL expiry", got)
	}
}

func TestEngine_DegradedWhenRankerFails(t *testing.T) {
	teachings, embeddings, _ := corpus(5, 0.9)
	factory := &fakeRepoFactory{uow: &fakeUnitOfWork{teachings: teachings, embeddings: embeddings}}
	engine := buildEngine(
		&fakeLLM{responses: []string{""}}, // ranking model down
		&fakeLLM{responses: []string{"Blessings."}},
		&fakeEmbedder{vector: []float32{0.1}}, factory,
		NewMemoryResultCache(time.Hour),
	)

	outcome := engine.Advise(context.Background(), "user-1", "sermons on hope")

	if outcome.Status != StatusDegraded {
		t.Fatalf("status = %s, want %s", outcome.Status, StatusDegraded)
	}
	if len(outcome.Items) == 0 {
		t.Fatal("degraded outcome returned no items despite retrieval hits")
	}
	for i := 1; i < len(outcome.Items); i++ {
		if outcome.Items[i].Similarity > outcome.Items[i-1].Similarity {
			t.Errorf("degraded items not in descending similarity at %d", i)
		}
	}
}

func TestEngine_NothingFoundOnEmptyIndex(t *testing.T) {
	teachings, embeddings, _ := corpus(0, 0.9)
	factory := &fakeRepoFactory{uow: &fakeUnitOfWork{teachings: teachings, embeddings: embeddings}}
	engine := buildEngine(
		&fakeLLM{}, &fakeLLM{},
		&fakeEmbedder{vector: []float32{0.1}}, factory,
		NewMemoryResultCache(time.Hour),
	)

	outcome := engine.Advise(context.Background(), "user-1", "xyzzynotopic")

	if outcome.Status != StatusNothingFound {
		t.Fatalf("status = %s, want %s", outcome.Status, StatusNothingFound)
	}
	if len(outcome.Items) != 0 {
		t.Errorf("items = %d, want 0", len(outcome.Items))
	}
	if outcome.Reply == "" {
		t.Error("nothing-found outcome has no reply text")
	}
}

func TestEngine_NothingFoundWhenAllScoredLow(t *testing.T) {
	teachings, embeddings, _ := corpus(5, 0.9)
	factory := &fakeRepoFactory{uow: &fakeUnitOfWork{teachings: teachings, embeddings: embeddings}}
	engine := buildEngine(
		&fakeLLM{responses: []string{scoreAll(5, 0)}},
		&fakeLLM{},
		&fakeEmbedder{vector: []float32{0.1}}, factory,
		NewMemoryResultCache(time.Hour),
	)

	outcome := engine.Advise(context.Background(), "user-1", "sermons on quantum chromodynamics")

	if outcome.Status != StatusNothingFound {
		t.Fatalf("status = %s, want %s", outcome.Status, StatusNothingFound)
	}
}

func TestEngine_NeedClarificationOnEmptyTopic(t *testing.T) {
	teachings, embeddings, _ := corpus(5, 0.9)
	factory := &fakeRepoFactory{uow: &fakeUnitOfWork{teachings: teachings, embeddings: embeddings}}
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	engine := buildEngine(&fakeLLM{}, &fakeLLM{}, embedder, factory, NewMemoryResultCache(time.Hour))

	outcome := engine.Advise(context.Background(), "user-1", "recommend me some sermons please")

	if outcome.Status != StatusNeedClarification {
		t.Fatalf("status = %s, want %s", outcome.Status, StatusNeedClarification)
	}
	if got := embedder.calls.Load(); got != 0 {
		t.Errorf("embedding calls = %d, want 0 for a clarification outcome", got)
	}
}

func TestEngine_MoreWithoutSession(t *testing.T) {
	teachings, embeddings, _ := corpus(5, 0.9)
	factory := &fakeRepoFactory{uow: &fakeUnitOfWork{teachings: teachings, embeddings: embeddings}}
	engine := buildEngine(&fakeLLM{}, &fakeLLM{}, &fakeEmbedder{vector: []float32{0.1}}, factory, NewMemoryResultCache(time.Hour))

	outcome := engine.Advise(context.Background(), "user-1", "more")

	if outcome.Status != StatusNoSession {
		t.Fatalf("status = %s, want %s", outcome.Status, StatusNoSession)
	}
}

func TestEngine_PaginationExhaustion(t *testing.T) {
	teachings, embeddings, _ := corpus(5, 0.9)
	factory := &fakeRepoFactory{uow: &fakeUnitOfWork{teachings: teachings, embeddings: embeddings}}
	engine := buildEngine(
		&fakeLLM{responses: []string{scoreAll(5, 5)}},
		&fakeLLM{responses: []string{"Blessings."}},
		&fakeEmbedder{vector: []float32{0.1}}, factory,
		NewMemoryResultCache(time.Hour),
	)

	first := engine.Advise(context.Background(), "user-1", "sermons on grace")
	if first.Status != StatusResults || first.HasMore {
		t.Fatalf("first: status %s hasMore %v, want results with no remainder", first.Status, first.HasMore)
	}

	more := engine.Advise(context.Background(), "user-1", "more")
	if more.Status != StatusNoMoreResults {
		t.Fatalf("status = %s, want %s", more.Status, StatusNoMoreResults)
	}
	if len(more.Items) != 0 {
		t.Errorf("exhausted outcome returned %d items", len(more.Items))
	}
}

func TestEngine_RetrievalFailureIsNothingFound(t *testing.T) {
	teachings, embeddings, _ := corpus(5, 0.9)
	embeddings.searchErr = fmt.Errorf("index unreachable")
	factory := &fakeRepoFactory{uow: &fakeUnitOfWork{teachings: teachings, embeddings: embeddings}}
	engine := buildEngine(&fakeLLM{}, &fakeLLM{}, &fakeEmbedder{vector: []float32{0.1}}, factory, NewMemoryResultCache(time.Hour))

	outcome := engine.Advise(context.Background(), "user-1", "sermons on healing")

	if outcome.Status != StatusNothingFound {
		t.Fatalf("status = %s, want %s", outcome.Status, StatusNothingFound)
	}
}
