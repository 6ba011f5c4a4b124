// internal/dating/dto.go
package dating

// DTOs for API requests/responses

type SearchRequestDTO struct {
	Filters *FilterParams `json:"filters"`
	Offset  int           `json:"offset" validate:"min=0"`
	Limit   int           `json:"limit" validate:"min=0"`
}

type RecommendationsRequestDTO struct {
	Filters *FilterParams `json:"filters"`
}

type RecommendationsResponseDTO struct {
	Recommendations []SmartRecommendation `json:"recommendations"`
}

// MatchResultDTO flattens a ScoredCandidate for the wire.
type MatchResultDTO struct {
	ID               int64                `json:"id"`
	DisplayName      string               `json:"display_name"`
	Age              int                  `json:"age"`
	Locality         string               `json:"locality,omitempty"`
	DistanceKm       float64              `json:"distance_km"`
	ParentingStyle   ParentingStyle       `json:"parenting_style,omitempty"`
	Interests        []string             `json:"interests"`
	TravelPreference TravelPreference     `json:"travel_preference,omitempty"`
	Score            int                  `json:"score"`
	Tier             Tier                 `json:"tier"`
	Factors          CompatibilityFactors `json:"factors"`
}

type MatchPageDTO struct {
	Results         []MatchResultDTO      `json:"results"`
	Total           int                   `json:"total"`
	Offset          int                   `json:"offset"`
	Limit           int                   `json:"limit"`
	Skipped         int                   `json:"skipped"`
	Recommendations []SmartRecommendation `json:"recommendations,omitempty"`
}

func toMatchResultDTO(sc ScoredCandidate) MatchResultDTO {
	dto := MatchResultDTO{
		ID:               sc.Candidate.ID,
		DisplayName:      sc.Candidate.DisplayName,
		Age:              sc.Candidate.Age,
		DistanceKm:       sc.DistanceKm,
		ParentingStyle:   sc.Candidate.ParentingStyle,
		Interests:        copyOf(sc.Candidate.Interests),
		TravelPreference: sc.Candidate.TravelPreference,
		Score:            sc.Score.Value,
		Tier:             sc.Score.Tier,
		Factors:          sc.Score.Factors,
	}
	if sc.Candidate.Location != nil {
		dto.Locality = sc.Candidate.Location.Locality
	}
	return dto
}

func toMatchPageDTO(page *MatchPage) MatchPageDTO {
	results := make([]MatchResultDTO, 0, len(page.Results))
	for _, sc := range page.Results {
		results = append(results, toMatchResultDTO(sc))
	}
	return MatchPageDTO{
		Results:         results,
		Total:           page.Total,
		Offset:          page.Offset,
		Limit:           page.Limit,
		Skipped:         page.Skipped,
		Recommendations: page.Recommendations,
	}
}

// filterSetFrom builds a validated FilterSet; a missing body means defaults.
func filterSetFrom(params *FilterParams) (*FilterSet, error) {
	if params == nil {
		return DefaultFilterSet(), nil
	}
	return NewFilterSet(*params)
}
