package recommend

import "github.com/google/uuid"

// Dedupe removes repeat teachings from an ordered candidate list. The first
// occurrence wins. Identities in exclude are dropped entirely; pass nil when
// there is no prior page to exclude against.
func Dedupe(candidates []Candidate, exclude []uuid.UUID) []Candidate {
	seen := make(map[uuid.UUID]bool, len(candidates)+len(exclude))
	for _, id := range exclude {
		seen[id] = true
	}

	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Teaching == nil || seen[c.Teaching.Id] {
			continue
		}
		seen[c.Teaching.Id] = true
		out = append(out, c)
	}
	return out
}
