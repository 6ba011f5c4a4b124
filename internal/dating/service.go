// internal/dating/service.go

package dating

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/imadgeboyega/kiekky-match/internal/common/logging"
)

var (
	ErrInvalidFilterBounds = errors.New("filter bounds outside allowed range")
	ErrInvalidFilterValue  = errors.New("unknown filter value")
	ErrSearcherNotFound    = errors.New("searcher not found")
)

// Service is the match engine exposed to the host application.
type Service interface {
	GetMatches(ctx context.Context, searcherID int64, filters *FilterSet, page Page) (*MatchPage, error)
	GetRecommendations(ctx context.Context, searcherID int64, filters *FilterSet) ([]SmartRecommendation, error)
}

// MatchPage is one page of ranked results. Recommendations is only set when
// the total falls below the configured minimum.
type MatchPage struct {
	Results         []ScoredCandidate     `json:"results"`
	Total           int                   `json:"total"`
	Offset          int                   `json:"offset"`
	Limit           int                   `json:"limit"`
	Skipped         int                   `json:"skipped"`
	Recommendations []SmartRecommendation `json:"recommendations,omitempty"`
}

type Config struct {
	Weights     Weights
	Recommender RecommenderConfig

	// ScoringWorkers bounds the goroutines used to score one search.
	ScoringWorkers int
	// ParallelThreshold is the eligible count from which scoring fans out.
	ParallelThreshold int

	DefaultPageLimit int
	MaxPageLimit     int
}

func DefaultConfig() Config {
	return Config{
		Weights:           DefaultWeights,
		Recommender:       DefaultRecommenderConfig(),
		ScoringWorkers:    runtime.GOMAXPROCS(0),
		ParallelThreshold: 256,
		DefaultPageLimit:  DefaultPageLimit,
		MaxPageLimit:      MaxPageLimit,
	}
}

type service struct {
	provider    CandidateProvider
	scorer      *Scorer
	recommender *Recommender
	cfg         Config
	logger      *logging.Logger
}

func NewService(provider CandidateProvider, cfg Config, logger *logging.Logger) (Service, error) {
	scorer, err := NewScorer(cfg.Weights)
	if err != nil {
		return nil, err
	}
	if cfg.ScoringWorkers <= 0 {
		cfg.ScoringWorkers = 1
	}
	if cfg.DefaultPageLimit <= 0 {
		cfg.DefaultPageLimit = DefaultPageLimit
	}
	if cfg.MaxPageLimit <= 0 {
		cfg.MaxPageLimit = MaxPageLimit
	}
	if cfg.MaxPageLimit < cfg.DefaultPageLimit {
		cfg.MaxPageLimit = cfg.DefaultPageLimit
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &service{
		provider:    provider,
		scorer:      scorer,
		recommender: NewRecommender(cfg.Recommender, scorer),
		cfg:         cfg,
		logger:      logger.With("component", "match_engine"),
	}, nil
}

func (s *service) GetMatches(ctx context.Context, searcherID int64, filters *FilterSet, page Page) (*MatchPage, error) {
	start := time.Now()
	defer func() { RecordPipelineDuration("get_matches", time.Since(start)) }()

	origin, pool, err := s.loadPool(ctx, searcherID)
	if err != nil {
		RecordSearch("error")
		return nil, err
	}

	// The caller may keep editing its FilterSet; search on a private copy.
	criteria := filters.Clone()

	ranked, report, err := s.rank(ctx, origin, criteria, pool)
	if err != nil {
		RecordSearch("error")
		return nil, err
	}

	page = page.Normalize(s.cfg.DefaultPageLimit, s.cfg.MaxPageLimit)
	result := &MatchPage{
		Results: Paginate(ranked, page),
		Total:   len(ranked),
		Offset:  page.Offset,
		Limit:   page.Limit,
		Skipped: report.Skipped,
	}

	if s.recommender.NeedsRecommendations(s.qualifying(ranked)) {
		result.Recommendations = s.recommend(origin, criteria, pool)
		RecordSearch("under_threshold")
	} else {
		RecordSearch("ok")
	}

	s.logger.Debug("match search completed",
		"searcher_id", searcherID,
		"pool", len(pool),
		"eligible", len(ranked),
		"skipped", report.Skipped,
		"recommendations", len(result.Recommendations),
	)

	return result, nil
}

func (s *service) GetRecommendations(ctx context.Context, searcherID int64, filters *FilterSet) ([]SmartRecommendation, error) {
	start := time.Now()
	defer func() { RecordPipelineDuration("get_recommendations", time.Since(start)) }()

	origin, pool, err := s.loadPool(ctx, searcherID)
	if err != nil {
		return nil, err
	}

	criteria := filters.Clone()
	ranked, _, err := s.rank(ctx, origin, criteria, pool)
	if err != nil {
		return nil, err
	}

	if !s.recommender.NeedsRecommendations(s.qualifying(ranked)) {
		return []SmartRecommendation{}, nil
	}
	return s.recommend(origin, criteria, pool), nil
}

// loadPool fetches the searcher's origin and the coarse pool around it. The
// pool is always drawn at the widest distance a filter may reach so that
// relaxation simulations see the same candidates.
func (s *service) loadPool(ctx context.Context, searcherID int64) (*Location, []CandidateProfile, error) {
	origin, err := s.provider.SearcherLocation(ctx, searcherID)
	if err != nil {
		return nil, nil, err
	}
	if origin == nil {
		s.logger.Debug("searcher has no location", "searcher_id", searcherID)
		return nil, nil, nil
	}

	pool, err := s.provider.Candidates(ctx, searcherID, *origin, MaxDistanceBound)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}
	return origin, pool, nil
}

// rank runs screen, score and rank over the pool.
func (s *service) rank(ctx context.Context, origin *Location, criteria *FilterSet, pool []CandidateProfile) ([]ScoredCandidate, FilterReport, error) {
	report := Screen(origin, criteria, pool)
	RecordScreening(len(pool), report)
	if report.Skipped > 0 {
		s.logger.Debug("skipped malformed candidates", "skipped", report.Skipped)
	}

	scored, err := s.scoreAll(ctx, criteria, report.Eligible)
	if err != nil {
		return nil, report, err
	}
	for _, sc := range scored {
		RecordCompatibilityScore(sc.Score.Value)
	}

	return Rank(scored), report, nil
}

// scoreAll scores every eligible candidate into a slice in input order. Large
// sets are split into chunks across a bounded errgroup; Wait is the barrier
// before ranking.
func (s *service) scoreAll(ctx context.Context, criteria *FilterSet, eligible []EligibleCandidate) ([]ScoredCandidate, error) {
	scored := make([]ScoredCandidate, len(eligible))
	scoreRange := func(from, to int) {
		for i := from; i < to; i++ {
			e := eligible[i]
			scored[i] = ScoredCandidate{
				Candidate:  e.Candidate,
				DistanceKm: e.DistanceKm,
				Score:      s.scorer.Score(criteria, e),
			}
		}
	}

	workers := s.cfg.ScoringWorkers
	if workers <= 1 || len(eligible) < s.cfg.ParallelThreshold {
		scoreRange(0, len(eligible))
		return scored, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (len(eligible) + workers - 1) / workers
	for from := 0; from < len(eligible); from += chunk {
		from, to := from, min(from+chunk, len(eligible))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scoreRange(from, to)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

func (s *service) recommend(origin *Location, criteria *FilterSet, pool []CandidateProfile) []SmartRecommendation {
	recs := s.recommender.Recommend(origin, criteria, pool)
	for _, r := range recs {
		RecordRecommendation(r.Dimension)
	}
	return recs
}

func (s *service) qualifying(ranked []ScoredCandidate) int {
	minScore := s.cfg.Recommender.MinimumScore
	if minScore <= 0 {
		return len(ranked)
	}
	count := 0
	for _, sc := range ranked {
		if sc.Score.Value >= minScore {
			count++
		}
	}
	return count
}
