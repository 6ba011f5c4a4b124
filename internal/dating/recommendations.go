// internal/dating/recommendations.go

package dating

import (
	"fmt"
	"sort"
)

// Dimension is a soft filter the recommender may suggest relaxing.
// Deal-breakers are never among them.
type Dimension string

const (
	DimensionDistance        Dimension = "max_distance"
	DimensionAgeRange        Dimension = "age_range"
	DimensionParentingStyles Dimension = "parenting_styles"
	DimensionInterests       Dimension = "interests"
)

// relaxationOrder is also the tie-break order.
var relaxationOrder = []Dimension{
	DimensionDistance,
	DimensionAgeRange,
	DimensionParentingStyles,
	DimensionInterests,
}

// SmartRecommendation suggests one relaxation and the count it would reach.
// Applying it is up to the caller.
type SmartRecommendation struct {
	Dimension          Dimension  `json:"dimension"`
	Message            string     `json:"message"`
	ProposedDistanceKm *float64   `json:"proposed_distance_km,omitempty"`
	ProposedAgeRange   *AgeRange  `json:"proposed_age_range,omitempty"`
	CurrentCount       int        `json:"current_count"`
	ResultingCount     int        `json:"resulting_count"`
	Filters            *FilterSet `json:"filters"`
}

// Improvement is the number of extra candidates the relaxation unlocks.
func (r SmartRecommendation) Improvement() int {
	return r.ResultingCount - r.CurrentCount
}

type RecommenderConfig struct {
	// MinimumResults is the result count below which recommendations are made.
	MinimumResults int
	DistanceStepKm float64
	AgeStep        int
	// MinimumScore is the score a candidate needs to count as a result.
	// Zero counts every eligible candidate.
	MinimumScore int
	// MaxRecommendations caps the returned list. Zero returns every
	// improving relaxation.
	MaxRecommendations int
}

func DefaultRecommenderConfig() RecommenderConfig {
	return RecommenderConfig{
		MinimumResults: 5,
		DistanceStepKm: 25,
		AgeStep:        5,
	}
}

// Recommender simulates single-dimension relaxations against a fixed pool.
type Recommender struct {
	cfg    RecommenderConfig
	scorer *Scorer
}

func NewRecommender(cfg RecommenderConfig, scorer *Scorer) *Recommender {
	if scorer == nil {
		scorer = NewDefaultScorer()
	}
	return &Recommender{cfg: cfg, scorer: scorer}
}

// NeedsRecommendations reports whether a result count is too low.
func (r *Recommender) NeedsRecommendations(count int) bool {
	return count < r.cfg.MinimumResults
}

// Recommend tries each relaxation on a copy of fs and returns those that
// increase the qualifying count, best first. Ties keep the fixed dimension
// order. fs itself is never modified.
func (r *Recommender) Recommend(origin *Location, fs *FilterSet, candidates []CandidateProfile) []SmartRecommendation {
	current := r.qualifying(origin, fs, candidates)

	recs := make([]SmartRecommendation, 0, len(relaxationOrder))
	for _, dim := range relaxationOrder {
		rec, ok := r.relax(dim, fs)
		if !ok {
			continue
		}
		rec.CurrentCount = current
		rec.ResultingCount = r.qualifying(origin, rec.Filters, candidates)
		if rec.Improvement() > 0 {
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Improvement() > recs[j].Improvement()
	})

	if r.cfg.MaxRecommendations > 0 && len(recs) > r.cfg.MaxRecommendations {
		recs = recs[:r.cfg.MaxRecommendations]
	}
	return recs
}

// relax builds the relaxed copy for one dimension. ok is false when the
// relaxation would leave the criteria unchanged.
func (r *Recommender) relax(dim Dimension, fs *FilterSet) (SmartRecommendation, bool) {
	relaxed := fs.Clone()
	rec := SmartRecommendation{Dimension: dim, Filters: relaxed}

	switch dim {
	case DimensionDistance:
		relaxed.SetMaxDistance(fs.MaxDistanceKm() + r.cfg.DistanceStepKm)
		if relaxed.MaxDistanceKm() == fs.MaxDistanceKm() {
			return rec, false
		}
		km := relaxed.MaxDistanceKm()
		rec.ProposedDistanceKm = &km
		rec.Message = fmt.Sprintf("Increase distance to %.0f km", km)

	case DimensionAgeRange:
		current := fs.AgeRange()
		relaxed.SetAgeRange(current.Lower-r.cfg.AgeStep, current.Upper+r.cfg.AgeStep)
		if relaxed.AgeRange() == current {
			return rec, false
		}
		ages := relaxed.AgeRange()
		rec.ProposedAgeRange = &ages
		rec.Message = fmt.Sprintf("Widen age range to %d-%d", ages.Lower, ages.Upper)

	case DimensionParentingStyles:
		if len(fs.parentingStyles) == 0 {
			return rec, false
		}
		relaxed.SetParentingStyles()
		rec.Message = "Include all parenting styles"

	case DimensionInterests:
		if len(fs.interests) == 0 {
			return rec, false
		}
		relaxed.SetInterests()
		rec.Message = "Remove interest requirements"

	default:
		return rec, false
	}

	return rec, true
}

func (r *Recommender) qualifying(origin *Location, fs *FilterSet, candidates []CandidateProfile) int {
	report := Screen(origin, fs, candidates)
	if r.cfg.MinimumScore <= 0 {
		return len(report.Eligible)
	}
	count := 0
	for _, e := range report.Eligible {
		if r.scorer.Score(fs, e).Value >= r.cfg.MinimumScore {
			count++
		}
	}
	return count
}
