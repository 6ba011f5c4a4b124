package dating

import (
	"errors"
	"math"
)

// Tier is the label attached to a compatibility score.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierGood   Tier = "good"
	TierGreat  Tier = "great"
)

// TierFor maps a 0-100 score onto its bucket:
// [0,40) low, [40,60) medium, [60,80) good, [80,100] great.
func TierFor(value int) Tier {
	switch {
	case value >= 80:
		return TierGreat
	case value >= 60:
		return TierGood
	case value >= 40:
		return TierMedium
	default:
		return TierLow
	}
}

// CompatibilityFactors are the normalised sub-scores, each in [0,1].
type CompatibilityFactors struct {
	AgeFit      float64 `json:"age_fit"`
	DistanceFit float64 `json:"distance_fit"`
	StyleFit    float64 `json:"style_fit"`
	InterestFit float64 `json:"interest_fit"`
}

// CompatibilityScore is recomputed per request and never persisted.
type CompatibilityScore struct {
	Value   int                  `json:"value"`
	Tier    Tier                 `json:"tier"`
	Factors CompatibilityFactors `json:"factors"`
}

// Weights control how the sub-scores combine. They must be non-negative and
// sum to 1.
type Weights struct {
	Age      float64
	Distance float64
	Style    float64
	Interest float64
}

var DefaultWeights = Weights{Age: 0.25, Distance: 0.25, Style: 0.25, Interest: 0.25}

var ErrInvalidWeights = errors.New("score weights must be non-negative and sum to 1")

func (w Weights) validate() error {
	if w.Age < 0 || w.Distance < 0 || w.Style < 0 || w.Interest < 0 {
		return ErrInvalidWeights
	}
	if math.Abs(w.Age+w.Distance+w.Style+w.Interest-1) > 1e-9 {
		return ErrInvalidWeights
	}
	return nil
}

// Scorer computes compatibility for candidates that already passed the
// eligibility rules. It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) (*Scorer, error) {
	if err := weights.validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: weights}, nil
}

// NewDefaultScorer weighs the four factors equally.
func NewDefaultScorer() *Scorer {
	return &Scorer{weights: DefaultWeights}
}

// Score rates a screened candidate against the searcher's criteria, reusing
// the distance computed by the eligibility pass.
func (s *Scorer) Score(fs *FilterSet, e EligibleCandidate) CompatibilityScore {
	return s.scoreAt(fs, e.Candidate, e.DistanceKm)
}

func (s *Scorer) scoreAt(fs *FilterSet, candidate CandidateProfile, distanceKm float64) CompatibilityScore {
	factors := CompatibilityFactors{
		AgeFit:      ageFit(fs.AgeRange(), candidate.Age),
		DistanceFit: distanceFit(distanceKm, fs.MaxDistanceKm()),
		StyleFit:    styleFit(fs, candidate.ParentingStyle),
		InterestFit: interestFit(fs.interests, candidate.Interests),
	}

	total := factors.AgeFit*s.weights.Age +
		factors.DistanceFit*s.weights.Distance +
		factors.StyleFit*s.weights.Style +
		factors.InterestFit*s.weights.Interest

	value := clampInt(int(math.Round(100*total)), 0, 100)
	return CompatibilityScore{
		Value:   value,
		Tier:    TierFor(value),
		Factors: factors,
	}
}

// ageFit rewards closeness to the middle of the range: 1 at the midpoint,
// 0 at either edge.
func ageFit(r AgeRange, age int) float64 {
	half := float64(r.Span()) / 2
	if half == 0 {
		if age == r.Lower {
			return 1
		}
		return 0
	}
	return clamp01(1 - math.Abs(float64(age)-r.Midpoint())/half)
}

// distanceFit decays linearly from 1 at the searcher to 0 at the cap.
func distanceFit(distanceKm, maxKm float64) float64 {
	if maxKm <= 0 {
		return 0
	}
	return clamp01(1 - distanceKm/maxKm)
}

// styleFit is binary: full credit when there is no preference or the style is
// one of those selected.
func styleFit(fs *FilterSet, style ParentingStyle) float64 {
	if len(fs.parentingStyles) == 0 || fs.HasParentingStyle(style) {
		return 1
	}
	return 0
}

// interestFit is the share of the searcher's selected interests the candidate
// also lists. No selection means full credit.
func interestFit(selected, candidate []string) float64 {
	if len(selected) == 0 {
		return 1
	}

	own := make(map[string]bool, len(candidate))
	for _, tag := range candidate {
		own[normalizeTag(tag)] = true
	}

	shared := 0
	for _, tag := range selected {
		if own[tag] {
			shared++
		}
	}

	return float64(shared) / float64(len(selected))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
