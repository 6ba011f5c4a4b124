package presets

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-match/internal/common/clock"
	"github.com/imadgeboyega/kiekky-match/internal/dating"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type backend struct {
	name string
	new  func(t *testing.T, clk clock.Clock) Store
}

var backends = []backend{
	{name: "memory", new: func(t *testing.T, clk clock.Clock) Store { return NewMemoryStore(clk) }},
	{name: "redis", new: func(t *testing.T, clk clock.Clock) Store {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
		return NewRedisStore(client, clk)
	}},
}

func eachBackend(t *testing.T, fn func(t *testing.T, store Store, clk *clock.Manual)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			clk := clock.NewManual(epoch)
			fn(t, b.new(t, clk), clk)
		})
	}
}

func sampleFilters() *dating.FilterSet {
	fs := dating.DefaultFilterSet()
	fs.SetAgeRange(28, 38)
	fs.SetInterests("cooking", "travel")
	fs.SetDealBreakers(dating.TraitSmoking)
	return fs
}

func TestSave(t *testing.T) {
	eachBackend(t, func(t *testing.T, store Store, clk *clock.Manual) {
		ctx := context.Background()
		fs := sampleFilters()

		rec, err := store.Save(ctx, 1, "  Weekend picks ", fs)
		require.NoError(t, err)

		_, err = uuid.Parse(rec.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Weekend picks", rec.Name)
		assert.Equal(t, int64(1), rec.OwnerID)
		assert.True(t, rec.LastUsed.Equal(epoch))
		assert.True(t, rec.CreatedAt.Equal(epoch))
		assert.Equal(t, 2, rec.FilterCount())

		// Later edits to the caller's FilterSet do not leak into the snapshot.
		fs.SetInterests()
		stored, err := store.Get(ctx, 1, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"cooking", "travel"}, stored.Filters.Interests())
		assert.Equal(t, 2, stored.FilterCount())
	})
}

func TestSaveValidation(t *testing.T) {
	eachBackend(t, func(t *testing.T, store Store, clk *clock.Manual) {
		ctx := context.Background()

		_, err := store.Save(ctx, 1, "   ", sampleFilters())
		assert.ErrorIs(t, err, ErrInvalidPresetName)

		_, err = store.Save(ctx, 1, strings.Repeat("x", MaxNameLength+1), sampleFilters())
		assert.ErrorIs(t, err, ErrInvalidPresetName)

		_, err = store.Save(ctx, 1, strings.Repeat("é", MaxNameLength), sampleFilters())
		assert.NoError(t, err)

		_, err = store.Save(ctx, 1, "no filters", nil)
		assert.ErrorIs(t, err, ErrMissingFilters)
	})
}

func TestApply(t *testing.T) {
	eachBackend(t, func(t *testing.T, store Store, clk *clock.Manual) {
		ctx := context.Background()
		rec, err := store.Save(ctx, 1, "Nearby", sampleFilters())
		require.NoError(t, err)

		clk.Advance(time.Hour)
		applied, err := store.Apply(ctx, 1, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, sampleFilters(), applied)

		// The returned copy is the caller's to change.
		applied.SetMaxDistance(150)

		stored, err := store.Get(ctx, 1, rec.ID)
		require.NoError(t, err)
		assert.True(t, stored.LastUsed.Equal(epoch.Add(time.Hour)))
		assert.True(t, stored.CreatedAt.Equal(epoch))
		assert.Equal(t, 50.0, stored.Filters.MaxDistanceKm())
	})
}

func TestApplyUnknownOrForeign(t *testing.T) {
	eachBackend(t, func(t *testing.T, store Store, clk *clock.Manual) {
		ctx := context.Background()
		rec, err := store.Save(ctx, 1, "Mine", sampleFilters())
		require.NoError(t, err)

		_, err = store.Apply(ctx, 1, uuid.NewString())
		assert.ErrorIs(t, err, ErrPresetNotFound)

		_, err = store.Apply(ctx, 2, rec.ID)
		assert.ErrorIs(t, err, ErrPresetNotFound)

		_, err = store.Get(ctx, 2, rec.ID)
		assert.ErrorIs(t, err, ErrPresetNotFound)
	})
}

func TestListOrdersByLastUsed(t *testing.T) {
	eachBackend(t, func(t *testing.T, store Store, clk *clock.Manual) {
		ctx := context.Background()

		var saved []SavedFilterSet
		for _, name := range []string{"first", "second", "third"} {
			rec, err := store.Save(ctx, 1, name, sampleFilters())
			require.NoError(t, err)
			saved = append(saved, rec)
			clk.Advance(time.Minute)
		}
		_, err := store.Save(ctx, 2, "someone else", sampleFilters())
		require.NoError(t, err)

		assert.Equal(t, []string{"third", "second", "first"}, names(t, store, 1))

		_, err = store.Apply(ctx, 1, saved[0].ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "third", "second"}, names(t, store, 1))

		empty, err := store.List(ctx, 3)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})
}

func TestDeleteIsIdempotent(t *testing.T) {
	eachBackend(t, func(t *testing.T, store Store, clk *clock.Manual) {
		ctx := context.Background()
		rec, err := store.Save(ctx, 1, "Temp", sampleFilters())
		require.NoError(t, err)

		// Another owner cannot remove it.
		require.NoError(t, store.Delete(ctx, 2, rec.ID))
		_, err = store.Get(ctx, 1, rec.ID)
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, 1, rec.ID))
		require.NoError(t, store.Delete(ctx, 1, rec.ID))

		_, err = store.Get(ctx, 1, rec.ID)
		assert.ErrorIs(t, err, ErrPresetNotFound)
		assert.Empty(t, names(t, store, 1))
	})
}

func TestConcurrentWrites(t *testing.T) {
	eachBackend(t, func(t *testing.T, store Store, clk *clock.Manual) {
		ctx := context.Background()
		base, err := store.Save(ctx, 1, "shared", sampleFilters())
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := store.Save(ctx, 1, fmt.Sprintf("preset %d", i), sampleFilters())
				assert.NoError(t, err)
				_, err = store.Apply(ctx, 1, base.ID)
				assert.NoError(t, err)
				_, err = store.List(ctx, 1)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		list, err := store.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, list, 21)
	})
}

func names(t *testing.T, store Store, ownerID int64) []string {
	t.Helper()
	list, err := store.List(context.Background(), ownerID)
	require.NoError(t, err)
	out := make([]string, 0, len(list))
	for _, rec := range list {
		out = append(out, rec.Name)
	}
	return out
}
