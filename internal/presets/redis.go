// internal/presets/redis.go

package presets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/imadgeboyega/kiekky-match/internal/common/clock"
	"github.com/imadgeboyega/kiekky-match/internal/dating"
)

const keyPrefix = "presets:"

// redisStore keeps each record as JSON and an owner index scored by
// last use in milliseconds. Writes are serialised per store instance.
type redisStore struct {
	mu     sync.Mutex
	client *redis.Client
	clock  clock.Clock
}

func NewRedisStore(client *redis.Client, clk clock.Clock) Store {
	if clk == nil {
		clk = clock.Real()
	}
	return &redisStore{client: client, clock: clk}
}

func recordKey(id string) string {
	return keyPrefix + "record:" + id
}

func ownerKey(ownerID int64) string {
	return keyPrefix + "owner:" + strconv.FormatInt(ownerID, 10)
}

func (s *redisStore) Save(ctx context.Context, ownerID int64, name string, filters *dating.FilterSet) (SavedFilterSet, error) {
	name, err := normalizeName(name)
	if err != nil {
		return SavedFilterSet{}, err
	}
	if filters == nil {
		return SavedFilterSet{}, ErrMissingFilters
	}

	now := s.clock.Now()
	rec := SavedFilterSet{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Filters:   filters.Clone(),
		CreatedAt: now,
		LastUsed:  now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(ctx, rec); err != nil {
		RecordOperation("save", "error")
		return SavedFilterSet{}, err
	}

	RecordOperation("save", "ok")
	return rec.clone(), nil
}

func (s *redisStore) Apply(ctx context.Context, ownerID int64, id string) (*dating.FilterSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, ErrPresetNotFound) {
			RecordOperation("apply", "not_found")
		}
		return nil, err
	}

	rec.LastUsed = s.clock.Now()
	if err := s.write(ctx, rec); err != nil {
		RecordOperation("apply", "error")
		return nil, err
	}

	RecordOperation("apply", "ok")
	return rec.Filters.Clone(), nil
}

func (s *redisStore) Get(ctx context.Context, ownerID int64, id string) (SavedFilterSet, error) {
	return s.load(ctx, ownerID, id)
}

func (s *redisStore) List(ctx context.Context, ownerID int64) ([]SavedFilterSet, error) {
	ids, err := s.client.ZRevRange(ctx, ownerKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	list := make([]SavedFilterSet, 0, len(ids))
	if len(ids) == 0 {
		return list, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var rec SavedFilterSet
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode preset: %w", err)
		}
		if rec.OwnerID == ownerID {
			list = append(list, rec)
		}
	}

	sortByRecent(list)
	return list, nil
}

func (s *redisStore) Delete(ctx context.Context, ownerID int64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.load(ctx, ownerID, id); err != nil {
		if errors.Is(err, ErrPresetNotFound) {
			RecordOperation("delete", "absent")
			return nil
		}
		return err
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, recordKey(id))
		pipe.ZRem(ctx, ownerKey(ownerID), id)
		return nil
	})
	if err != nil {
		RecordOperation("delete", "error")
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	RecordOperation("delete", "ok")
	return nil
}

func (s *redisStore) load(ctx context.Context, ownerID int64, id string) (SavedFilterSet, error) {
	raw, err := s.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return SavedFilterSet{}, ErrPresetNotFound
		}
		return SavedFilterSet{}, fmt.Errorf("failed to get preset: %w", err)
	}

	var rec SavedFilterSet
	if err := json.Unmarshal(raw, &rec); err != nil {
		return SavedFilterSet{}, fmt.Errorf("failed to decode preset: %w", err)
	}
	if rec.OwnerID != ownerID {
		return SavedFilterSet{}, ErrPresetNotFound
	}
	return rec, nil
}

// write stores the record and its index entry in one transaction.
func (s *redisStore) write(ctx context.Context, rec SavedFilterSet) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recordKey(rec.ID), data, 0)
		pipe.ZAdd(ctx, ownerKey(rec.OwnerID), &redis.Z{
			Score:  float64(rec.LastUsed.UnixMilli()),
			Member: rec.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store preset: %w", err)
	}
	return nil
}
