package dating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/imadgeboyega/kiekky-match/internal/common/clock"
)

// CandidateProvider supplies the searcher's location and the coarse pool of
// profiles around it. Blocked and reported users are already removed.
type CandidateProvider interface {
	// SearcherLocation returns nil when the searcher has no coordinates.
	SearcherLocation(ctx context.Context, searcherID int64) (*Location, error)
	Candidates(ctx context.Context, searcherID int64, near Location, radiusKm float64) ([]CandidateProfile, error)
}

type postgresProvider struct {
	db            *sqlx.DB
	clock         clock.Clock
	maxCandidates int
}

// NewPostgresProvider reads candidates from the users table.
func NewPostgresProvider(db *sqlx.DB, clk clock.Clock, maxCandidates int) CandidateProvider {
	if clk == nil {
		clk = clock.Real()
	}
	if maxCandidates <= 0 {
		maxCandidates = 2000
	}
	return &postgresProvider{db: db, clock: clk, maxCandidates: maxCandidates}
}

type locationRow struct {
	Latitude  *float64 `db:"latitude"`
	Longitude *float64 `db:"longitude"`
	Locality  *string  `db:"location"`
}

type candidateRow struct {
	ID               int64          `db:"id"`
	DisplayName      string         `db:"display_name"`
	DateOfBirth      *time.Time     `db:"date_of_birth"`
	Latitude         *float64       `db:"latitude"`
	Longitude        *float64       `db:"longitude"`
	Locality         *string        `db:"location"`
	ParentingStyle   *string        `db:"parenting_style"`
	Interests        pq.StringArray `db:"interests"`
	Traits           pq.StringArray `db:"traits"`
	TravelPreference *string        `db:"travel_preference"`
}

func (r *postgresProvider) SearcherLocation(ctx context.Context, searcherID int64) (*Location, error) {
	var row locationRow
	query := `SELECT latitude, longitude, location FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, searcherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSearcherNotFound
		}
		return nil, fmt.Errorf("failed to get searcher location: %w", err)
	}

	if row.Latitude == nil || row.Longitude == nil {
		return nil, nil
	}
	return &Location{
		Latitude:  *row.Latitude,
		Longitude: *row.Longitude,
		Locality:  derefString(row.Locality, ""),
	}, nil
}

func (r *postgresProvider) Candidates(ctx context.Context, searcherID int64, near Location, radiusKm float64) ([]CandidateProfile, error) {
	minLat, maxLat, minLng, maxLng := boundingBox(near, radiusKm)

	query := `
		SELECT
			u.id, COALESCE(u.display_name, u.username) AS display_name,
			u.date_of_birth, u.latitude, u.longitude, u.location,
			u.parenting_style, u.interests, u.traits, u.travel_preference
		FROM users u
		WHERE u.id <> $1
		  AND u.is_profile_complete = TRUE
		  AND u.latitude BETWEEN $2 AND $3
		  AND u.longitude BETWEEN $4 AND $5
		  AND NOT EXISTS (
			SELECT 1 FROM blocked_users b
			WHERE (b.user_id = $1 AND b.blocked_id = u.id)
			   OR (b.user_id = u.id AND b.blocked_id = $1)
		  )
		ORDER BY u.id
		LIMIT $6`

	var rows []candidateRow
	err := r.db.SelectContext(ctx, &rows, query, searcherID, minLat, maxLat, minLng, maxLng, r.maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}

	now := r.clock.Now()
	candidates := make([]CandidateProfile, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, row.toProfile(now))
	}
	return candidates, nil
}

// toProfile converts a row. A missing birth date yields age -1 so the
// eligibility rules skip the record as malformed.
func (row candidateRow) toProfile(now time.Time) CandidateProfile {
	profile := CandidateProfile{
		ID:               row.ID,
		DisplayName:      row.DisplayName,
		Age:              -1,
		ParentingStyle:   ParentingStyle(derefString(row.ParentingStyle, "")),
		Interests:        []string(row.Interests),
		TravelPreference: TravelPreference(derefString(row.TravelPreference, "")),
	}
	if row.DateOfBirth != nil {
		profile.Age = AgeOn(*row.DateOfBirth, now)
	}
	if row.Latitude != nil && row.Longitude != nil {
		profile.Location = &Location{
			Latitude:  *row.Latitude,
			Longitude: *row.Longitude,
			Locality:  derefString(row.Locality, ""),
		}
	}
	for _, t := range row.Traits {
		profile.Traits = append(profile.Traits, Trait(t))
	}
	return profile
}

func derefString(s *string, defaultValue string) string {
	if s != nil {
		return *s
	}
	return defaultValue
}
