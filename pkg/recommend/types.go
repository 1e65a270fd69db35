package recommend

import (
	"sermon-advisor-be/internal/entity"
)

// Candidate is a teaching plus its transient per-query scores. Candidates live
// for one request and are never persisted.
type Candidate struct {
	Teaching   *entity.Teaching
	Similarity float64 // vector closeness, 0..1
	Relevance  float64 // ranker judgment, 0..1, may diverge from similarity
	Rationale  string
}

// QueryIntent is what the parser extracts from a raw message.
type QueryIntent struct {
	Topic          string
	RequestedCount int
	Raw            string
	More           bool // continuation request, routes to pagination
}

// Status is the terminal outcome class of one advisor request.
type Status string

const (
	StatusResults           Status = "results"
	StatusDegraded          Status = "degraded" // results, but ranked by raw similarity after a model failure
	StatusNothingFound      Status = "nothing_found"
	StatusNeedClarification Status = "need_clarification"
	StatusNoMoreResults     Status = "no_more_results"
	StatusNoSession         Status = "no_session"
	StatusInternalError     Status = "internal_error"
)

// Outcome is the engine's answer to the transport layer. The engine never
// leaves a request unanswered: every path ends in exactly one Outcome.
type Outcome struct {
	Status  Status
	Items   []Candidate
	Reply   string // warm acknowledgment text, empty on non-result outcomes
	HasMore bool   // whether a follow-up "more" would return items
}
