package dating

import "sort"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ScoredCandidate pairs an eligible candidate with its score.
type ScoredCandidate struct {
	Candidate  CandidateProfile   `json:"candidate"`
	DistanceKm float64            `json:"distance_km"`
	Score      CompatibilityScore `json:"score"`
}

// Page is an offset/limit window over a ranked sequence.
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Normalize fills in defaults: negative offsets become 0, a non-positive
// limit becomes defaultLimit, and the limit is capped at maxLimit.
func (p Page) Normalize(defaultLimit, maxLimit int) Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Rank returns a new slice ordered by score descending, then candidate id
// ascending. The input is left untouched.
func Rank(scored []ScoredCandidate) []ScoredCandidate {
	ranked := make([]ScoredCandidate, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score.Value != ranked[j].Score.Value {
			return ranked[i].Score.Value > ranked[j].Score.Value
		}
		return ranked[i].Candidate.ID < ranked[j].Candidate.ID
	})

	return ranked
}

// Paginate slices the ranked sequence. An offset past the end yields an
// empty page.
func Paginate(ranked []ScoredCandidate, page Page) []ScoredCandidate {
	page = page.Normalize(DefaultPageLimit, 0)
	if page.Offset >= len(ranked) {
		return []ScoredCandidate{}
	}
	end := page.Offset + min(page.Limit, len(ranked)-page.Offset)
	out := make([]ScoredCandidate, end-page.Offset)
	copy(out, ranked[page.Offset:end])
	return out
}
