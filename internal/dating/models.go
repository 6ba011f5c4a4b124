// internal/dating/models.go

package dating

import (
	"math"
	"time"
)

// ParentingStyle is the single parenting approach a profile identifies with.
type ParentingStyle string

const (
	StyleAuthoritative ParentingStyle = "authoritative"
	StyleAuthoritarian ParentingStyle = "authoritarian"
	StylePermissive    ParentingStyle = "permissive"
	StyleGentle        ParentingStyle = "gentle"
	StyleAttachment    ParentingStyle = "attachment"
	StyleFreeRange     ParentingStyle = "free_range"
)

var parentingStyles = []ParentingStyle{
	StyleAuthoritative, StyleAuthoritarian, StylePermissive,
	StyleGentle, StyleAttachment, StyleFreeRange,
}

func (s ParentingStyle) Valid() bool {
	for _, known := range parentingStyles {
		if s == known {
			return true
		}
	}
	return false
}

// Trait is a flag a profile exhibits. Deal-breakers are expressed in the
// same vocabulary so a searcher can veto any trait.
type Trait string

const (
	TraitSmoking           Trait = "smoking"
	TraitDrinking          Trait = "drinking"
	TraitHasPets           Trait = "has_pets"
	TraitNoChildren        Trait = "no_children"
	TraitWantsMoreChildren Trait = "wants_more_children"
	TraitReligious         Trait = "religious"
)

var traits = []Trait{
	TraitSmoking, TraitDrinking, TraitHasPets,
	TraitNoChildren, TraitWantsMoreChildren, TraitReligious,
}

func (t Trait) Valid() bool {
	for _, known := range traits {
		if t == known {
			return true
		}
	}
	return false
}

// TravelPreference is informational only; it never excludes or scores.
type TravelPreference string

const (
	TravelHomebody         TravelPreference = "homebody"
	TravelWeekendTrips     TravelPreference = "weekend_trips"
	TravelFrequentTraveler TravelPreference = "frequent_traveler"
	TravelDigitalNomad     TravelPreference = "digital_nomad"
)

var travelPreferences = []TravelPreference{
	TravelHomebody, TravelWeekendTrips, TravelFrequentTraveler, TravelDigitalNomad,
}

func (p TravelPreference) Valid() bool {
	for _, known := range travelPreferences {
		if p == known {
			return true
		}
	}
	return false
}

// Location is a point on the globe plus the locality text shown to users.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Locality  string  `json:"locality,omitempty"`
}

// Valid reports whether the coordinates are finite and inside the WGS84 ranges.
func (l Location) Valid() bool {
	if math.IsNaN(l.Latitude) || math.IsNaN(l.Longitude) {
		return false
	}
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// CandidateProfile is the read-only view of a person the engine evaluates.
// The engine never mutates it.
type CandidateProfile struct {
	ID               int64            `json:"id"`
	DisplayName      string           `json:"display_name"`
	Age              int              `json:"age"`
	Location         *Location        `json:"location,omitempty"`
	ParentingStyle   ParentingStyle   `json:"parenting_style,omitempty"`
	Interests        []string         `json:"interests"`
	Traits           []Trait          `json:"traits"`
	TravelPreference TravelPreference `json:"travel_preference,omitempty"`
}

// HasTrait reports whether the profile carries the given trait flag.
func (c CandidateProfile) HasTrait(t Trait) bool {
	for _, own := range c.Traits {
		if own == t {
			return true
		}
	}
	return false
}

// AgeOn returns the age in whole years on the given day.
func AgeOn(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		years--
	}
	return years
}
