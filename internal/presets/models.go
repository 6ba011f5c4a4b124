// internal/presets/models.go

package presets

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/imadgeboyega/kiekky-match/internal/dating"
)

const MaxNameLength = 60

var (
	ErrPresetNotFound    = errors.New("filter preset not found")
	ErrInvalidPresetName = errors.New("preset name must be 1-60 characters")
	ErrMissingFilters    = errors.New("preset filters are required")
)

// SavedFilterSet is a named snapshot of a searcher's filters. Filters is
// never handed out directly; readers get a clone.
type SavedFilterSet struct {
	ID        string            `json:"id"`
	OwnerID   int64             `json:"owner_id"`
	Name      string            `json:"name"`
	Filters   *dating.FilterSet `json:"filters"`
	CreatedAt time.Time         `json:"created_at"`
	LastUsed  time.Time         `json:"last_used"`
}

// FilterCount is computed from the snapshot on every call.
func (s SavedFilterSet) FilterCount() int {
	if s.Filters == nil {
		return 0
	}
	return s.Filters.FilterCount()
}

func (s SavedFilterSet) clone() SavedFilterSet {
	out := s
	out.Filters = s.Filters.Clone()
	return out
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > MaxNameLength {
		return "", ErrInvalidPresetName
	}
	return name, nil
}

// sortByRecent orders most recently used first, then newest, then id.
func sortByRecent(list []SavedFilterSet) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.LastUsed.Equal(b.LastUsed) {
			return a.LastUsed.After(b.LastUsed)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
