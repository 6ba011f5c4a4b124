package dating

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-match/internal/common/clock"
)

func newMockProvider(t *testing.T) (CandidateProvider, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := clock.NewManual(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	return NewPostgresProvider(sqlx.NewDb(db, "sqlmock"), clk, 0), mock
}

func TestPostgresSearcherLocation(t *testing.T) {
	provider, mock := newMockProvider(t)
	query := `SELECT latitude, longitude, location FROM users WHERE id = \$1`

	mock.ExpectQuery(query).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"latitude", "longitude", "location"}).
			AddRow(6.5, 3.4, "Lagos"))
	mock.ExpectQuery(query).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"latitude", "longitude", "location"}).
			AddRow(nil, nil, nil))
	mock.ExpectQuery(query).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"latitude", "longitude", "location"}))

	loc, err := provider.SearcherLocation(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &Location{Latitude: 6.5, Longitude: 3.4, Locality: "Lagos"}, loc)

	loc, err = provider.SearcherLocation(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, loc)

	_, err = provider.SearcherLocation(context.Background(), 3)
	assert.ErrorIs(t, err, ErrSearcherNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCandidates(t *testing.T) {
	provider, mock := newMockProvider(t)

	columns := []string{
		"id", "display_name", "date_of_birth", "latitude", "longitude", "location",
		"parenting_style", "interests", "traits", "travel_preference",
	}
	rows := sqlmock.NewRows(columns).
		AddRow(7, "Ada", time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC), 6.6, 3.4, "Ikeja",
			"gentle", "{cooking,sports}", "{smoking}", "homebody").
		AddRow(8, "Bola", nil, nil, nil, nil, nil, "{}", "{}", nil)

	mock.ExpectQuery(`FROM users u`).
		WithArgs(int64(100), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), int64(2000)).
		WillReturnRows(rows)

	got, err := provider.Candidates(context.Background(), 100, *testOrigin, MaxDistanceBound)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, CandidateProfile{
		ID:               7,
		DisplayName:      "Ada",
		Age:              35,
		Location:         &Location{Latitude: 6.6, Longitude: 3.4, Locality: "Ikeja"},
		ParentingStyle:   StyleGentle,
		Interests:        []string{"cooking", "sports"},
		Traits:           []Trait{TraitSmoking},
		TravelPreference: TravelHomebody,
	}, got[0])

	// Missing birth date and coordinates surface as a record the
	// eligibility rules will skip.
	assert.Equal(t, -1, got[1].Age)
	assert.Nil(t, got[1].Location)
	assert.Equal(t, ExcludedMalformed, Evaluate(testOrigin, DefaultFilterSet(), got[1]).Reason)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	minLat, maxLat, minLng, maxLng := boundingBox(*testOrigin, 100)

	for _, km := range []float64{0, 50, 99} {
		loc := northOf(km)
		assert.True(t, loc.Latitude >= minLat && loc.Latitude <= maxLat)
	}
	assert.Less(t, minLng, testOrigin.Longitude)
	assert.Greater(t, maxLng, testOrigin.Longitude)
	assert.Greater(t, northOf(101).Latitude, maxLat)
}

func TestAgeOn(t *testing.T) {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 35, AgeOn(birth, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 36, AgeOn(birth, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
}
