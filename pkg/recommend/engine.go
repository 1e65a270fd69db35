package recommend

import (
	"context"
	"time"

	"sermon-advisor-be/internal/constant"
	"sermon-advisor-be/internal/pkg/logger"
	"sermon-advisor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Engine runs the full recommendation pipeline for one inbound request:
// intent parsing, cache lookup, retrieval, ranking, dedup, session paging and
// the pastoral reply. Every upstream failure degrades into one of the Outcome
// statuses; Advise never returns an error to the transport layer.
type Engine struct {
	parser     *IntentParser
	retriever  *Retriever
	ranker     *Ranker
	replies    *ReplyGenerator
	cache      ResultCache
	sessions   *SessionStore
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	timeout    time.Duration
}

func NewEngine(
	parser *IntentParser,
	retriever *Retriever,
	ranker *Ranker,
	replies *ReplyGenerator,
	cache ResultCache,
	sessions *SessionStore,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
	timeout time.Duration,
) *Engine {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Engine{
		parser:     parser,
		retriever:  retriever,
		ranker:     ranker,
		replies:    replies,
		cache:      cache,
		sessions:   sessions,
		uowFactory: uowFactory,
		logger:     log,
		timeout:    timeout,
	}
}

// Advise handles one raw request for one user and always produces a terminal
// Outcome.
func (e *Engine) Advise(ctx context.Context, userId string, rawText string) Outcome {
	intent := e.parser.Parse(rawText)

	if intent.More {
		return e.nextPage(ctx, userId)
	}

	if intent.Topic == "" {
		return Outcome{Status: StatusNeedClarification, Reply: constant.ReplyNeedClarification}
	}

	if intent.RequestedCount < 1 {
		// The parser clamps, so this is a bug upstream of the pipeline. Fail
		// this one request, not the process.
		e.logger.Error("engine", "invalid requested count after parsing", map[string]interface{}{
			"user_id": userId,
			"count":   intent.RequestedCount,
			"raw":     rawText,
		})
		return Outcome{Status: StatusInternalError, Reply: constant.ReplyInternalError}
	}

	return e.search(ctx, userId, intent)
}

func (e *Engine) search(ctx context.Context, userId string, intent *QueryIntent) Outcome {
	topic := NormalizeTopic(intent.Topic)
	key := CacheKey(userId, topic, intent.RequestedCount)

	if cached := e.cacheGet(ctx, key); cached != nil {
		if candidates := e.hydrateCached(ctx, cached); len(candidates) > 0 {
			e.logger.Info("engine", "cache hit", map[string]interface{}{
				"user_id": userId,
				"topic":   topic,
			})
			return e.respond(ctx, userId, intent, candidates, cached.Degraded)
		}
		// Hydration failed or every cached identity disappeared; treat as a
		// miss and rebuild.
	}

	retrieveCtx, cancel := context.WithTimeout(ctx, e.timeout)
	candidates := e.retriever.Retrieve(retrieveCtx, topic)
	cancel()

	if len(candidates) == 0 {
		e.sessions.Clear(userId)
		return Outcome{Status: StatusNothingFound, Reply: constant.ReplyNothingFound}
	}

	rankCtx, cancel := context.WithTimeout(ctx, e.timeout)
	ranked, degraded := e.ranker.Rank(rankCtx, topic, candidates)
	cancel()

	if len(ranked) == 0 {
		// Everything scored below the relevance bar.
		e.sessions.Clear(userId)
		return Outcome{Status: StatusNothingFound, Reply: constant.ReplyNothingFound}
	}

	deduped := Dedupe(ranked, nil)

	if err := e.cache.Set(ctx, key, toCached(deduped, degraded)); err != nil {
		e.logger.Warn("engine", "cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return e.respond(ctx, userId, intent, deduped, degraded)
}

// respond stores the full ranked list in the session, serves the first page
// and wraps it in a reply.
func (e *Engine) respond(ctx context.Context, userId string, intent *QueryIntent, ranked []Candidate, degraded bool) Outcome {
	ids := make([]uuid.UUID, len(ranked))
	byId := make(map[uuid.UUID]Candidate, len(ranked))
	for i, c := range ranked {
		ids[i] = c.Teaching.Id
		byId[c.Teaching.Id] = c
	}

	page, hasMore := e.sessions.Start(userId, NormalizeTopic(intent.Topic), intent.RequestedCount, ids)
	if len(page) == 0 {
		return Outcome{Status: StatusNothingFound, Reply: constant.ReplyNothingFound}
	}

	items := make([]Candidate, len(page))
	for i, id := range page {
		items[i] = byId[id]
	}

	replyCtx, cancel := context.WithTimeout(ctx, e.timeout)
	reply := e.replies.ForResults(replyCtx, intent.Topic, len(items))
	cancel()

	status := StatusResults
	if degraded {
		status = StatusDegraded
	}
	return Outcome{Status: status, Items: items, Reply: reply, HasMore: hasMore}
}

// nextPage serves the continuation path. It bypasses retrieval and ranking
// entirely and only hydrates the next slice of stored identities.
func (e *Engine) nextPage(ctx context.Context, userId string) Outcome {
	page, hasMore, err := e.sessions.NextPage(userId)
	switch err {
	case nil:
	case ErrNoSession:
		return Outcome{Status: StatusNoSession, Reply: constant.ReplyNoSession}
	case ErrExhausted:
		return Outcome{Status: StatusNoMoreResults, Reply: constant.ReplyNoMoreResults}
	default:
		return Outcome{Status: StatusInternalError, Reply: constant.ReplyInternalError}
	}

	hydrateCtx, cancel := context.WithTimeout(ctx, e.timeout)
	teachings, err := hydrate(hydrateCtx, e.uowFactory, page)
	cancel()
	if err != nil {
		e.logger.Error("engine", "failed to hydrate continuation page", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return Outcome{Status: StatusInternalError, Reply: constant.ReplyInternalError}
	}

	items := make([]Candidate, 0, len(teachings))
	for _, t := range teachings {
		items = append(items, Candidate{Teaching: t})
	}

	return Outcome{
		Status:  StatusResults,
		Items:   items,
		Reply:   constant.ReplyMoreIntro,
		HasMore: hasMore,
	}
}

// cacheGet reads the cache, hydrates the stored identities and rebuilds the
// candidate list. Any failure is a miss.
func (e *Engine) cacheGet(ctx context.Context, key string) *CachedResult {
	cached, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn("engine", "cache read failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return cached
}

// hydrateCached resolves a cache entry's identities back to full records,
// keeping the cached order and scores. Identities that no longer resolve are
// skipped.
func (e *Engine) hydrateCached(ctx context.Context, cached *CachedResult) []Candidate {
	ids := make([]uuid.UUID, len(cached.Items))
	itemById := make(map[uuid.UUID]CachedItem, len(cached.Items))
	for i, item := range cached.Items {
		ids[i] = item.TeachingId
		itemById[item.TeachingId] = item
	}

	hydrateCtx, cancel := context.WithTimeout(ctx, e.timeout)
	teachings, err := hydrate(hydrateCtx, e.uowFactory, ids)
	cancel()
	if err != nil {
		e.logger.Warn("engine", "failed to hydrate cached result", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	candidates := make([]Candidate, 0, len(teachings))
	for _, t := range teachings {
		item := itemById[t.Id]
		candidates = append(candidates, Candidate{
			Teaching:   t,
			Similarity: item.Similarity,
			Relevance:  item.Relevance,
			Rationale:  item.Rationale,
		})
	}
	return candidates
}

func toCached(candidates []Candidate, degraded bool) *CachedResult {
	items := make([]CachedItem, len(candidates))
	for i, c := range candidates {
		items[i] = CachedItem{
			TeachingId: c.Teaching.Id,
			Similarity: c.Similarity,
			Relevance:  c.Relevance,
			Rationale:  c.Rationale,
		}
	}
	return &CachedResult{Items: items, Degraded: degraded}
}
