// internal/dating/eligibility.go

package dating

// Exclusion names the hard rule that removed a candidate.
type Exclusion string

const (
	ExcludedMalformed       Exclusion = "malformed"
	ExcludedMissingLocation Exclusion = "missing_location"
	ExcludedDistance        Exclusion = "distance"
	ExcludedAge             Exclusion = "age"
	ExcludedDealBreaker     Exclusion = "deal_breaker"
)

const maxPlausibleAge = 130

// Evaluation is the outcome of the hard rules for one candidate.
type Evaluation struct {
	Candidate  CandidateProfile
	DistanceKm float64
	Eligible   bool
	Reason     Exclusion
}

// EligibleCandidate is a candidate that passed every hard rule, together with
// the distance computed on the way.
type EligibleCandidate struct {
	Candidate  CandidateProfile
	DistanceKm float64
}

// FilterReport is the result of screening a pool. Eligible keeps input order.
type FilterReport struct {
	Eligible []EligibleCandidate
	Excluded map[Exclusion]int
	Skipped  int
}

// Evaluate applies the hard rules to a single candidate, cheapest first:
// record sanity, distance, age, then deal-breakers. origin is the searcher's
// current location; a nil origin fails every candidate closed.
func Evaluate(origin *Location, fs *FilterSet, c CandidateProfile) Evaluation {
	eval := Evaluation{Candidate: c}

	if c.ID <= 0 || c.Age < 0 || c.Age > maxPlausibleAge ||
		(c.Location != nil && !c.Location.Valid()) {
		eval.Reason = ExcludedMalformed
		return eval
	}

	if origin == nil || !origin.Valid() || c.Location == nil {
		eval.Reason = ExcludedMissingLocation
		return eval
	}
	distance, _ := DistanceKm(origin, c.Location)
	eval.DistanceKm = distance
	if distance > fs.MaxDistanceKm() {
		eval.Reason = ExcludedDistance
		return eval
	}

	if !fs.AgeRange().Contains(c.Age) {
		eval.Reason = ExcludedAge
		return eval
	}

	// One matching deal-breaker vetoes the candidate outright.
	for _, t := range fs.dealBreakers {
		if c.HasTrait(t) {
			eval.Reason = ExcludedDealBreaker
			return eval
		}
	}

	eval.Eligible = true
	return eval
}

// Screen runs Evaluate over the pool. Malformed records are counted in
// Skipped and never abort the rest of the batch.
func Screen(origin *Location, fs *FilterSet, candidates []CandidateProfile) FilterReport {
	report := FilterReport{
		Eligible: make([]EligibleCandidate, 0, len(candidates)),
		Excluded: make(map[Exclusion]int),
	}
	for _, c := range candidates {
		eval := Evaluate(origin, fs, c)
		if eval.Eligible {
			report.Eligible = append(report.Eligible, EligibleCandidate{
				Candidate:  c,
				DistanceKm: eval.DistanceKm,
			})
			continue
		}
		if eval.Reason == ExcludedMalformed {
			report.Skipped++
		}
		report.Excluded[eval.Reason]++
	}
	return report
}

// Filter returns the eligible subset of candidates in input order.
func Filter(origin *Location, fs *FilterSet, candidates []CandidateProfile) []CandidateProfile {
	report := Screen(origin, fs, candidates)
	out := make([]CandidateProfile, 0, len(report.Eligible))
	for _, e := range report.Eligible {
		out = append(out, e.Candidate)
	}
	return out
}
