package recommend

import (
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

var (
	ErrNoSession = errors.New("no active recommendation session")
	ErrExhausted = errors.New("recommendation session exhausted")
)

// sessionState is one user's paging position over a ranked result list. Only
// identities are stored; records are re-hydrated when a page is served.
type sessionState struct {
	Topic       string
	PageSize    int
	TeachingIds []uuid.UUID
	Index       int
}

// SessionStore keeps per-user "show me more" state with an idle TTL. Every
// fresh search replaces the user's session outright, so paging always walks
// the most recent result list. Per-user mutations are serialized through a
// striped lock so a "more" that follows a search always sees the new session.
type SessionStore struct {
	store *gocache.Cache
	locks [64]sync.Mutex
}

func NewSessionStore(idleTTL time.Duration) *SessionStore {
	return &SessionStore{
		store: gocache.New(idleTTL, 10*time.Minute),
	}
}

func (s *SessionStore) lockFor(userId string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userId))
	return &s.locks[h.Sum32()%uint32(len(s.locks))]
}

// Start replaces the user's session with a fresh ordered result list and
// returns the first page. An empty list clears the session instead.
func (s *SessionStore) Start(userId string, topic string, pageSize int, ids []uuid.UUID) (page []uuid.UUID, hasMore bool) {
	mu := s.lockFor(userId)
	mu.Lock()
	defer mu.Unlock()

	if len(ids) == 0 {
		s.store.Delete(userId)
		return nil, false
	}
	if pageSize < 1 {
		pageSize = 1
	}

	first := pageSize
	if first > len(ids) {
		first = len(ids)
	}

	s.store.Set(userId, &sessionState{
		Topic:       topic,
		PageSize:    pageSize,
		TeachingIds: ids,
		Index:       first,
	}, gocache.DefaultExpiration)

	return ids[:first], first < len(ids)
}

// NextPage advances the user's session and returns the next batch, sized by
// the count the original search asked for. It never repeats an identity
// already served: the stored index only moves forward.
func (s *SessionStore) NextPage(userId string) (page []uuid.UUID, hasMore bool, err error) {
	mu := s.lockFor(userId)
	mu.Lock()
	defer mu.Unlock()

	v, found := s.store.Get(userId)
	if !found {
		return nil, false, ErrNoSession
	}
	state := v.(*sessionState)

	if state.Index >= len(state.TeachingIds) {
		return nil, false, ErrExhausted
	}

	end := state.Index + state.PageSize
	if end > len(state.TeachingIds) {
		end = len(state.TeachingIds)
	}
	page = state.TeachingIds[state.Index:end]
	state.Index = end

	// Refresh the idle TTL while the user keeps paging.
	s.store.Set(userId, state, gocache.DefaultExpiration)

	return page, end < len(state.TeachingIds), nil
}

// Served returns the identities already shown to the user in the current
// session, for dedup exclusion. Nil when there is no session.
func (s *SessionStore) Served(userId string) []uuid.UUID {
	mu := s.lockFor(userId)
	mu.Lock()
	defer mu.Unlock()

	v, found := s.store.Get(userId)
	if !found {
		return nil
	}
	state := v.(*sessionState)
	return state.TeachingIds[:state.Index]
}

// Clear drops the user's session, if any.
func (s *SessionStore) Clear(userId string) {
	mu := s.lockFor(userId)
	mu.Lock()
	defer mu.Unlock()
	s.store.Delete(userId)
}
