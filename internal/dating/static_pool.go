package dating

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// StaticPool is an in-memory CandidateProvider for local runs and tests.
type StaticPool struct {
	mu         sync.RWMutex
	locations  map[int64]*Location
	candidates []CandidateProfile
	blocked    map[int64]map[int64]bool
}

func NewStaticPool() *StaticPool {
	return &StaticPool{
		locations: make(map[int64]*Location),
		blocked:   make(map[int64]map[int64]bool),
	}
}

// SetSearcherLocation registers a searcher. A nil location marks the
// searcher as known but unlocated.
func (p *StaticPool) SetSearcherLocation(searcherID int64, loc *Location) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locations[searcherID] = loc
}

func (p *StaticPool) Add(candidates ...CandidateProfile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.candidates = append(p.candidates, candidates...)
}

// Block hides blockedID from searcherID's pool and vice versa.
func (p *StaticPool) Block(searcherID, blockedID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pair := range [][2]int64{{searcherID, blockedID}, {blockedID, searcherID}} {
		if p.blocked[pair[0]] == nil {
			p.blocked[pair[0]] = make(map[int64]bool)
		}
		p.blocked[pair[0]][pair[1]] = true
	}
}

func (p *StaticPool) SearcherLocation(ctx context.Context, searcherID int64) (*Location, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	loc, ok := p.locations[searcherID]
	if !ok {
		return nil, ErrSearcherNotFound
	}
	if loc == nil {
		return nil, nil
	}
	copied := *loc
	return &copied, nil
}

// Candidates returns every stored profile within radiusKm of near, except
// the searcher and anyone blocked. Unlocated profiles are kept so the
// eligibility rules can exclude them.
func (p *StaticPool) Candidates(ctx context.Context, searcherID int64, near Location, radiusKm float64) ([]CandidateProfile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]CandidateProfile, 0, len(p.candidates))
	for _, c := range p.candidates {
		if c.ID == searcherID || p.blocked[searcherID][c.ID] {
			continue
		}
		if d, ok := DistanceKm(&near, c.Location); ok && d > radiusKm {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type seedFile struct {
	Searchers []struct {
		ID       int64     `json:"id"`
		Location *Location `json:"location"`
	} `json:"searchers"`
	Candidates []CandidateProfile `json:"candidates"`
	Blocks     [][2]int64         `json:"blocks"`
}

// LoadSeedFile builds a StaticPool from a JSON seed file.
func LoadSeedFile(path string) (*StaticPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	pool := NewStaticPool()
	for _, s := range seed.Searchers {
		pool.SetSearcherLocation(s.ID, s.Location)
	}
	pool.Add(seed.Candidates...)
	for _, b := range seed.Blocks {
		pool.Block(b[0], b[1])
	}
	return pool, nil
}
