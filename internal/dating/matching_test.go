package dating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioFilters() *FilterSet {
	fs := DefaultFilterSet()
	fs.SetAgeRange(30, 40)
	fs.SetMaxDistance(50)
	fs.SetParentingStyles(StyleAuthoritative)
	fs.SetInterests("cooking", "sports")
	return fs
}

func TestScorePerfectMatch(t *testing.T) {
	c := candidate(1, 35, &Location{Latitude: testOrigin.Latitude, Longitude: testOrigin.Longitude})
	c.ParentingStyle = StyleAuthoritative
	c.Interests = []string{"cooking", "sports", "reading"}

	score := NewDefaultScorer().Score(scenarioFilters(), EligibleCandidate{Candidate: c})

	assert.Equal(t, CompatibilityFactors{AgeFit: 1, DistanceFit: 1, StyleFit: 1, InterestFit: 1}, score.Factors)
	assert.Equal(t, 100, score.Value)
	assert.Equal(t, TierGreat, score.Tier)
}

func TestScoreEligibleButZero(t *testing.T) {
	fs := scenarioFilters()
	c := candidate(2, 40, northOf(50))
	c.ParentingStyle = StylePermissive
	c.Interests = []string{}

	score := NewDefaultScorer().scoreAt(fs, c, 50)

	assert.Equal(t, CompatibilityFactors{}, score.Factors)
	assert.Equal(t, 0, score.Value)
	assert.Equal(t, TierLow, score.Tier)

	// Still passes the hard rules when sitting exactly on the cap.
	exact, _ := DistanceKm(testOrigin, c.Location)
	fs.SetMaxDistance(exact)
	assert.True(t, Evaluate(testOrigin, fs, c).Eligible)
}

func TestScoreIsPure(t *testing.T) {
	fs := scenarioFilters()
	c := candidate(3, 33, northOf(12))
	c.ParentingStyle = StyleGentle
	c.Interests = []string{"Cooking"}

	report := Screen(testOrigin, fs, []CandidateProfile{c})
	require.Len(t, report.Eligible, 1)

	scorer := NewDefaultScorer()
	first := scorer.Score(fs, report.Eligible[0])
	second := scorer.Score(fs, report.Eligible[0])
	assert.Equal(t, first, second)
}

func TestScorePartialFactors(t *testing.T) {
	fs := scenarioFilters()
	c := candidate(4, 32, nil)
	c.ParentingStyle = StyleAuthoritative
	c.Interests = []string{"sports"}

	score := NewDefaultScorer().scoreAt(fs, c, 25)

	assert.InDelta(t, 0.4, score.Factors.AgeFit, 1e-9)
	assert.InDelta(t, 0.5, score.Factors.DistanceFit, 1e-9)
	assert.Equal(t, 1.0, score.Factors.StyleFit)
	assert.Equal(t, 0.5, score.Factors.InterestFit)
	// 100 * (0.4 + 0.5 + 1 + 0.5) / 4 = 60
	assert.Equal(t, 60, score.Value)
	assert.Equal(t, TierGood, score.Tier)
}

func TestScoreNoPreferenceGivesFullCredit(t *testing.T) {
	fs := DefaultFilterSet()
	c := candidate(5, 35, nil)
	c.ParentingStyle = StylePermissive

	score := NewDefaultScorer().scoreAt(fs, c, 0)
	assert.Equal(t, 1.0, score.Factors.StyleFit)
	assert.Equal(t, 1.0, score.Factors.InterestFit)
}

func TestAgeFitZeroSpan(t *testing.T) {
	r := AgeRange{Lower: 30, Upper: 30}
	assert.Equal(t, 1.0, ageFit(r, 30))
	assert.Equal(t, 0.0, ageFit(r, 31))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		value int
		want  Tier
	}{
		{0, TierLow},
		{39, TierLow},
		{40, TierMedium},
		{59, TierMedium},
		{60, TierGood},
		{79, TierGood},
		{80, TierGreat},
		{100, TierGreat},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.value), "value %d", tt.value)
	}
}

func TestNewScorerRejectsBadWeights(t *testing.T) {
	_, err := NewScorer(Weights{Age: 0.5, Distance: 0.5, Style: 0.5})
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = NewScorer(Weights{Age: 1.5, Distance: -0.5})
	assert.ErrorIs(t, err, ErrInvalidWeights)

	scorer, err := NewScorer(Weights{Age: 1})
	require.NoError(t, err)
	c := candidate(1, 35, nil)
	assert.Equal(t, 100, scorer.scoreAt(scenarioFilters(), c, 50).Value)
}
