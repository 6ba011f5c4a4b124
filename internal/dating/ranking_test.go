package dating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scored(id int64, value int) ScoredCandidate {
	return ScoredCandidate{
		Candidate: CandidateProfile{ID: id},
		Score:     CompatibilityScore{Value: value, Tier: TierFor(value)},
	}
}

func ids(list []ScoredCandidate) []int64 {
	out := make([]int64, 0, len(list))
	for _, sc := range list {
		out = append(out, sc.Candidate.ID)
	}
	return out
}

func TestRankOrdersByScoreThenID(t *testing.T) {
	input := []ScoredCandidate{
		scored(7, 55), scored(3, 90), scored(5, 55), scored(1, 10), scored(2, 90),
	}

	ranked := Rank(input)

	assert.Equal(t, []int64{2, 3, 5, 7, 1}, ids(ranked))
	assert.Equal(t, []int64{7, 3, 5, 1, 2}, ids(input), "input is not reordered")
}

func TestRankIsIdempotent(t *testing.T) {
	input := []ScoredCandidate{scored(4, 70), scored(9, 70), scored(1, 20), scored(6, 99)}

	once := Rank(input)
	twice := Rank(once)
	assert.Equal(t, once, twice)
}

func TestPaginate(t *testing.T) {
	ranked := Rank([]ScoredCandidate{scored(1, 90), scored(2, 80), scored(3, 70), scored(4, 60), scored(5, 50)})

	tests := []struct {
		name string
		page Page
		want []int64
	}{
		{name: "first page", page: Page{Offset: 0, Limit: 2}, want: []int64{1, 2}},
		{name: "middle page", page: Page{Offset: 2, Limit: 2}, want: []int64{3, 4}},
		{name: "short last page", page: Page{Offset: 4, Limit: 2}, want: []int64{5}},
		{name: "offset at end", page: Page{Offset: 5, Limit: 2}, want: []int64{}},
		{name: "offset past end", page: Page{Offset: 50, Limit: 2}, want: []int64{}},
		{name: "negative offset", page: Page{Offset: -3, Limit: 1}, want: []int64{1}},
		{name: "default limit", page: Page{Offset: 1}, want: []int64{2, 3, 4, 5}},
		{name: "huge limit", page: Page{Offset: 1, Limit: math.MaxInt}, want: []int64{2, 3, 4, 5}},
		{name: "huge offset and limit", page: Page{Offset: math.MaxInt, Limit: math.MaxInt}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(ranked, tt.page)
			assert.NotNil(t, page)
			assert.Equal(t, tt.want, ids(page))
		})
	}
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Offset: 0, Limit: 20}, Page{Offset: -1, Limit: 0}.Normalize(20, 100))
	assert.Equal(t, Page{Offset: 3, Limit: 100}, Page{Offset: 3, Limit: 500}.Normalize(20, 100))
	assert.Equal(t, Page{Offset: 3, Limit: 7}, Page{Offset: 3, Limit: 7}.Normalize(20, 100))
}
