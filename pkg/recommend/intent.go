package recommend

import (
	"strconv"
	"strings"
)

// IntentParser turns a raw conversational message into a QueryIntent.
// It is rule-based and never fails: the worst case is an empty topic, which
// the caller surfaces as a clarification prompt.
type IntentParser struct {
	DefaultCount int
	MaxCount     int
}

func NewIntentParser(defaultCount, maxCount int) *IntentParser {
	if defaultCount <= 0 {
		defaultCount = 5
	}
	if maxCount < defaultCount {
		maxCount = defaultCount
	}
	return &IntentParser{
		DefaultCount: defaultCount,
		MaxCount:     maxCount,
	}
}

// continuation phrases that mean "give me the next batch"
var moreKeywords = map[string]bool{
	"more":          true,
	"more sermons":  true,
	"more messages": true,
	"show more":     true,
	"next":          true,
}

// leading command verbs to strip before isolating the topic
var commandPrefixes = []string{
	"recommend me",
	"recommend",
	"suggest me",
	"suggest",
	"give me",
	"find me",
	"find",
	"show me",
	"i need",
	"i want",
}

// connective/filler words removed anywhere in the message
var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"on": true, "about": true, "for": true, "of": true,
	"some": true, "something": true, "please": true,
	"sermon": true, "sermons": true, "message": true, "messages": true,
	"teaching": true, "teachings": true,
}

// Parse extracts the topic phrase and requested count from a raw message.
func (p *IntentParser) Parse(raw string) *QueryIntent {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	if moreKeywords[lower] {
		return &QueryIntent{
			Raw:            raw,
			More:           true,
			RequestedCount: p.DefaultCount,
		}
	}

	count := p.DefaultCount
	countFound := false

	// Strip command prefixes first so "recommend 3 sermons on faith" leaves
	// "3 sermons on faith"
	for _, prefix := range commandPrefixes {
		if strings.HasPrefix(lower, prefix+" ") {
			trimmed = strings.TrimSpace(trimmed[len(prefix):])
			lower = strings.ToLower(trimmed)
			break
		}
	}

	var topicWords []string
	for _, word := range strings.Fields(trimmed) {
		cleaned := strings.Trim(word, ".,?!;:\"'")
		if cleaned == "" {
			continue
		}

		if !countFound {
			if n, err := strconv.Atoi(cleaned); err == nil {
				count = p.clamp(n)
				countFound = true
				continue
			}
		}

		if fillerWords[strings.ToLower(cleaned)] {
			continue
		}

		topicWords = append(topicWords, cleaned)
	}

	return &QueryIntent{
		Topic:          strings.Join(topicWords, " "),
		RequestedCount: p.clamp(count),
		Raw:            raw,
	}
}

func (p *IntentParser) clamp(n int) int {
	if n < 1 {
		return 1
	}
	if n > p.MaxCount {
		return p.MaxCount
	}
	return n
}

// NormalizeTopic canonicalizes a topic for cache keying so trivially different
// phrasings of the same request still hit the cache.
func NormalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
