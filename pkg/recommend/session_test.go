package recommend

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newIds(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func TestSessionStore_StartServesFirstPage(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ids := newIds(12)

	page, hasMore := store.Start("user-1", "faith", 5, ids)

	if len(page) != 5 {
		t.Fatalf("page len = %d, want 5", len(page))
	}
	if !hasMore {
		t.Error("hasMore = false, want true")
	}
	for i, id := range page {
		if id != ids[i] {
			t.Errorf("page[%d] = %v, want %v", i, id, ids[i])
		}
	}
}

func TestSessionStore_MoreNeverRepeats(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ids := newIds(13)

	seen := make(map[uuid.UUID]bool)
	page, _ := store.Start("user-1", "hope", 5, ids)
	for _, id := range page {
		seen[id] = true
	}

	for {
		next, _, err := store.NextPage("user-1")
		if err == ErrExhausted {
			break
		}
		if err != nil {
			t.Fatalf("NextPage: %v", err)
		}
		for _, id := range next {
			if seen[id] {
				t.Fatalf("identity %v served twice", id)
			}
			seen[id] = true
		}
	}

	if len(seen) != len(ids) {
		t.Errorf("served %d distinct identities, want %d", len(seen), len(ids))
	}
}

func TestSessionStore_ExhaustionIsDistinct(t *testing.T) {
	store := NewSessionStore(time.Hour)
	store.Start("user-1", "grace", 5, newIds(5))

	_, _, err := store.NextPage("user-1")
	if err != ErrExhausted {
		t.Errorf("err = %v, want ErrExhausted", err)
	}

	// repeat calls stay exhausted, never an empty page
	_, _, err = store.NextPage("user-1")
	if err != ErrExhausted {
		t.Errorf("second call err = %v, want ErrExhausted", err)
	}
}

func TestSessionStore_NoSession(t *testing.T) {
	store := NewSessionStore(time.Hour)

	if _, _, err := store.NextPage("stranger"); err != ErrNoSession {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestSessionStore_NewSearchResetsSession(t *testing.T) {
	store := NewSessionStore(time.Hour)
	first := newIds(10)
	second := newIds(10)

	store.Start("user-1", "faith", 5, first)
	store.Start("user-1", "healing", 5, second)

	page, _, err := store.NextPage("user-1")
	if err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	for i, id := range page {
		if id != second[5+i] {
			t.Errorf("page[%d] = %v, want %v from the new session", i, id, second[5+i])
		}
	}
}

func TestSessionStore_PartialLastPage(t *testing.T) {
	store := NewSessionStore(time.Hour)
	store.Start("user-1", "joy", 5, newIds(7))

	page, hasMore, err := store.NextPage("user-1")
	if err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("page len = %d, want 2", len(page))
	}
	if hasMore {
		t.Error("hasMore = true, want false on final slice")
	}
}

func TestSessionStore_EmptyListClears(t *testing.T) {
	store := NewSessionStore(time.Hour)
	store.Start("user-1", "faith", 5, newIds(5))
	store.Start("user-1", "faith", 5, nil)

	if _, _, err := store.NextPage("user-1"); err != ErrNoSession {
		t.Errorf("err = %v, want ErrNoSession after empty start", err)
	}
}

func TestSessionStore_ServedTracksShownItems(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ids := newIds(10)

	store.Start("user-1", "peace", 4, ids)
	if served := store.Served("user-1"); len(served) != 4 {
		t.Fatalf("served = %d, want 4", len(served))
	}

	store.NextPage("user-1")
	if served := store.Served("user-1"); len(served) != 8 {
		t.Errorf("served = %d, want 8", len(served))
	}

	if served := store.Served("nobody"); served != nil {
		t.Errorf("served for unknown user = %v, want nil", served)
	}
}

func TestSessionStore_IsolatedPerUser(t *testing.T) {
	store := NewSessionStore(time.Hour)
	store.Start("alice", "faith", 5, newIds(10))

	if _, _, err := store.NextPage("bob"); err != ErrNoSession {
		t.Errorf("bob err = %v, want ErrNoSession", err)
	}
}

func TestSessionStore_IdleExpiry(t *testing.T) {
	store := NewSessionStore(20 * time.Millisecond)
	store.Start("user-1", "faith", 5, newIds(10))

	time.Sleep(40 * time.Millisecond)

	if _, _, err := store.NextPage("user-1"); err != ErrNoSession {
		t.Errorf("err = %v, want ErrNoSession after idle expiry", err)
	}
}
