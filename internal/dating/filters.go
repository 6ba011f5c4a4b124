// internal/dating/filters.go

package dating

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Domain bounds every FilterSet stays inside.
const (
	MinAgeBound      = 18
	MaxAgeBound      = 65
	MinDistanceBound = 5.0
	MaxDistanceBound = 200.0

	defaultMinAge      = 25
	defaultMaxAge      = 45
	defaultMaxDistance = 50.0
)

// AgeRange is an inclusive pair of ages.
type AgeRange struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

func (r AgeRange) Contains(age int) bool {
	return age >= r.Lower && age <= r.Upper
}

func (r AgeRange) Midpoint() float64 {
	return float64(r.Lower+r.Upper) / 2
}

func (r AgeRange) Span() int {
	return r.Upper - r.Lower
}

// FilterParams is the plain, exported shape of a FilterSet. It is what gets
// decoded from requests and persisted in presets.
type FilterParams struct {
	MinAge            int                `json:"min_age"`
	MaxAge            int                `json:"max_age"`
	MaxDistanceKm     float64            `json:"max_distance_km"`
	ParentingStyles   []ParentingStyle   `json:"parenting_styles"`
	Interests         []string           `json:"interests"`
	DealBreakers      []Trait            `json:"deal_breakers"`
	TravelPreferences []TravelPreference `json:"travel_preferences"`
}

// FilterSet holds a searcher's active criteria. Fields are only reachable
// through setters so the age and distance bounds hold after every write.
// A FilterSet is not safe for concurrent mutation; Clone it per search.
type FilterSet struct {
	ageRange          AgeRange
	maxDistanceKm     float64
	parentingStyles   []ParentingStyle
	interests         []string
	dealBreakers      []Trait
	travelPreferences []TravelPreference
}

// DefaultFilterSet returns the criteria a searcher starts with.
func DefaultFilterSet() *FilterSet {
	return &FilterSet{
		ageRange:          AgeRange{Lower: defaultMinAge, Upper: defaultMaxAge},
		maxDistanceKm:     defaultMaxDistance,
		parentingStyles:   []ParentingStyle{},
		interests:         []string{},
		dealBreakers:      []Trait{},
		travelPreferences: []TravelPreference{},
	}
}

// NewFilterSet builds a FilterSet from untrusted input. Unlike the setters it
// rejects out-of-domain values instead of clamping them.
func NewFilterSet(p FilterParams) (*FilterSet, error) {
	if p.MinAge < MinAgeBound || p.MaxAge > MaxAgeBound || p.MinAge > p.MaxAge {
		return nil, fmt.Errorf("%w: age range %d-%d outside %d-%d",
			ErrInvalidFilterBounds, p.MinAge, p.MaxAge, MinAgeBound, MaxAgeBound)
	}
	if math.IsNaN(p.MaxDistanceKm) || p.MaxDistanceKm < MinDistanceBound || p.MaxDistanceKm > MaxDistanceBound {
		return nil, fmt.Errorf("%w: max distance %v outside %v-%v km",
			ErrInvalidFilterBounds, p.MaxDistanceKm, MinDistanceBound, MaxDistanceBound)
	}
	for _, s := range p.ParentingStyles {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: parenting style %q", ErrInvalidFilterValue, s)
		}
	}
	for _, t := range p.DealBreakers {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: deal-breaker %q", ErrInvalidFilterValue, t)
		}
	}
	for _, tp := range p.TravelPreferences {
		if !tp.Valid() {
			return nil, fmt.Errorf("%w: travel preference %q", ErrInvalidFilterValue, tp)
		}
	}

	fs := &FilterSet{
		ageRange:      AgeRange{Lower: p.MinAge, Upper: p.MaxAge},
		maxDistanceKm: p.MaxDistanceKm,
	}
	fs.SetParentingStyles(p.ParentingStyles...)
	fs.SetInterests(p.Interests...)
	fs.SetDealBreakers(p.DealBreakers...)
	fs.SetTravelPreferences(p.TravelPreferences...)
	return fs, nil
}

// Params returns an independent snapshot of the FilterSet.
func (f *FilterSet) Params() FilterParams {
	return FilterParams{
		MinAge:            f.ageRange.Lower,
		MaxAge:            f.ageRange.Upper,
		MaxDistanceKm:     f.maxDistanceKm,
		ParentingStyles:   copyOf(f.parentingStyles),
		Interests:         copyOf(f.interests),
		DealBreakers:      copyOf(f.dealBreakers),
		TravelPreferences: copyOf(f.travelPreferences),
	}
}

// Clone returns an independent copy. A nil FilterSet clones to the defaults.
func (f *FilterSet) Clone() *FilterSet {
	if f == nil {
		return DefaultFilterSet()
	}
	return &FilterSet{
		ageRange:          f.ageRange,
		maxDistanceKm:     f.maxDistanceKm,
		parentingStyles:   copyOf(f.parentingStyles),
		interests:         copyOf(f.interests),
		dealBreakers:      copyOf(f.dealBreakers),
		travelPreferences: copyOf(f.travelPreferences),
	}
}

func (f *FilterSet) AgeRange() AgeRange     { return f.ageRange }
func (f *FilterSet) MaxDistanceKm() float64 { return f.maxDistanceKm }

func (f *FilterSet) ParentingStyles() []ParentingStyle {
	return copyOf(f.parentingStyles)
}

func (f *FilterSet) Interests() []string {
	return copyOf(f.interests)
}

func (f *FilterSet) DealBreakers() []Trait {
	return copyOf(f.dealBreakers)
}

func (f *FilterSet) TravelPreferences() []TravelPreference {
	return copyOf(f.travelPreferences)
}

func (f *FilterSet) HasParentingStyle(s ParentingStyle) bool {
	for _, own := range f.parentingStyles {
		if own == s {
			return true
		}
	}
	return false
}

func (f *FilterSet) HasInterest(tag string) bool {
	tag = normalizeTag(tag)
	for _, own := range f.interests {
		if own == tag {
			return true
		}
	}
	return false
}

func (f *FilterSet) HasDealBreaker(t Trait) bool {
	for _, own := range f.dealBreakers {
		if own == t {
			return true
		}
	}
	return false
}

// FilterCount is the number of optional dimensions currently in use. It is
// always derived from the live sets.
func (f *FilterSet) FilterCount() int {
	count := 0
	if len(f.parentingStyles) > 0 {
		count++
	}
	if len(f.interests) > 0 {
		count++
	}
	if len(f.dealBreakers) > 0 {
		count++
	}
	if len(f.travelPreferences) > 0 {
		count++
	}
	return count
}

// SetAgeRange clamps both ends into the domain. Reversed bounds are swapped.
func (f *FilterSet) SetAgeRange(lower, upper int) {
	if lower > upper {
		lower, upper = upper, lower
	}
	f.ageRange = AgeRange{
		Lower: clampInt(lower, MinAgeBound, MaxAgeBound),
		Upper: clampInt(upper, MinAgeBound, MaxAgeBound),
	}
}

// SetMinAge moves the lower bound, dragging the upper bound along if it
// would otherwise fall below it.
func (f *FilterSet) SetMinAge(age int) {
	age = clampInt(age, MinAgeBound, MaxAgeBound)
	f.ageRange.Lower = age
	if f.ageRange.Upper < age {
		f.ageRange.Upper = age
	}
}

// SetMaxAge moves the upper bound, dragging the lower bound along if needed.
func (f *FilterSet) SetMaxAge(age int) {
	age = clampInt(age, MinAgeBound, MaxAgeBound)
	f.ageRange.Upper = age
	if f.ageRange.Lower > age {
		f.ageRange.Lower = age
	}
}

// SetMaxDistance clamps km into the domain. NaN leaves the value unchanged.
func (f *FilterSet) SetMaxDistance(km float64) {
	if math.IsNaN(km) {
		return
	}
	f.maxDistanceKm = math.Min(MaxDistanceBound, math.Max(MinDistanceBound, km))
}

// SetParentingStyles replaces the selection. Unknown styles are dropped.
func (f *FilterSet) SetParentingStyles(styles ...ParentingStyle) {
	out := make([]ParentingStyle, 0, len(styles))
	for _, s := range styles {
		if s.Valid() && !containsStyle(out, s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	f.parentingStyles = out
}

func (f *FilterSet) ToggleParentingStyle(s ParentingStyle) {
	if !s.Valid() {
		return
	}
	if f.HasParentingStyle(s) {
		kept := make([]ParentingStyle, 0, len(f.parentingStyles))
		for _, own := range f.parentingStyles {
			if own != s {
				kept = append(kept, own)
			}
		}
		f.parentingStyles = kept
		return
	}
	f.SetParentingStyles(append(f.ParentingStyles(), s)...)
}

// SetInterests replaces the selection with normalised, de-duplicated tags.
func (f *FilterSet) SetInterests(tags ...string) {
	f.interests = normalizeTags(tags)
}

func (f *FilterSet) AddInterest(tag string) {
	f.SetInterests(append(f.Interests(), tag)...)
}

func (f *FilterSet) RemoveInterest(tag string) {
	tag = normalizeTag(tag)
	kept := make([]string, 0, len(f.interests))
	for _, own := range f.interests {
		if own != tag {
			kept = append(kept, own)
		}
	}
	f.interests = kept
}

// SetDealBreakers replaces the veto list. Unknown traits are dropped.
func (f *FilterSet) SetDealBreakers(flags ...Trait) {
	out := make([]Trait, 0, len(flags))
	for _, t := range flags {
		if t.Valid() && !containsTrait(out, t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	f.dealBreakers = out
}

func (f *FilterSet) ToggleDealBreaker(t Trait) {
	if !t.Valid() {
		return
	}
	if f.HasDealBreaker(t) {
		kept := make([]Trait, 0, len(f.dealBreakers))
		for _, own := range f.dealBreakers {
			if own != t {
				kept = append(kept, own)
			}
		}
		f.dealBreakers = kept
		return
	}
	f.SetDealBreakers(append(f.DealBreakers(), t)...)
}

func (f *FilterSet) SetTravelPreferences(prefs ...TravelPreference) {
	out := make([]TravelPreference, 0, len(prefs))
	seen := make(map[TravelPreference]bool, len(prefs))
	for _, p := range prefs {
		if p.Valid() && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	f.travelPreferences = out
}

// Reset restores the default criteria.
func (f *FilterSet) Reset() {
	*f = *DefaultFilterSet()
}

func (f *FilterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Params())
}

func (f *FilterSet) UnmarshalJSON(data []byte) error {
	var p FilterParams
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	parsed, err := NewFilterSet(p)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = normalizeTag(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func containsStyle(list []ParentingStyle, s ParentingStyle) bool {
	for _, own := range list {
		if own == s {
			return true
		}
	}
	return false
}

func containsTrait(list []Trait, t Trait) bool {
	for _, own := range list {
		if own == t {
			return true
		}
	}
	return false
}

func copyOf[T any](s []T) []T {
	return append(make([]T, 0, len(s)), s...)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
