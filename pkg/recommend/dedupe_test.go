package recommend

import (
	"testing"

	"sermon-advisor-be/internal/entity"

	"github.com/google/uuid"
)

func candidateWithId(id uuid.UUID, similarity float64) Candidate {
	return Candidate{
		Teaching:   &entity.Teaching{Id: id, Title: "t-" + id.String()[:8]},
		Similarity: similarity,
	}
}

func TestDedupe_RemovesInternalDuplicates(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	in := []Candidate{
		candidateWithId(a, 0.9),
		candidateWithId(b, 0.8),
		candidateWithId(a, 0.7),
	}

	out := Dedupe(in, nil)

	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	// first occurrence wins
	if out[0].Teaching.Id != a || out[0].Similarity != 0.9 {
		t.Errorf("first = %v (%v), want first occurrence of %v", out[0].Teaching.Id, out[0].Similarity, a)
	}
	if out[1].Teaching.Id != b {
		t.Errorf("second = %v, want %v", out[1].Teaching.Id, b)
	}
}

func TestDedupe_ExcludesPriorIdentities(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	in := []Candidate{
		candidateWithId(a, 0.9),
		candidateWithId(b, 0.8),
		candidateWithId(c, 0.7),
	}

	out := Dedupe(in, []uuid.UUID{a, c})

	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Teaching.Id != b {
		t.Errorf("kept = %v, want %v", out[0].Teaching.Id, b)
	}
}

func TestDedupe_PreservesOrderAndHandlesNil(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	in := []Candidate{
		candidateWithId(b, 0.6),
		{Teaching: nil},
		candidateWithId(a, 0.5),
	}

	out := Dedupe(in, nil)

	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Teaching.Id != b || out[1].Teaching.Id != a {
		t.Errorf("order changed: got [%v %v], want [%v %v]", out[0].Teaching.Id, out[1].Teaching.Id, b, a)
	}
}

func TestDedupe_EmptyInput(t *testing.T) {
	if out := Dedupe(nil, []uuid.UUID{uuid.New()}); len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}
