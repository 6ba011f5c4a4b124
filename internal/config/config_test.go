package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/kiekky")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.CandidateSource)
	assert.Equal(t, "memory", cfg.PresetStore)
	assert.Equal(t, 5, cfg.MinResultThreshold)
	assert.Equal(t, 25.0, cfg.DistanceStepKm)
	assert.Equal(t, 5, cfg.AgeStep)
	assert.Equal(t, 20, cfg.DefaultPageLimit)
	assert.Equal(t, 100, cfg.MaxPageLimit)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CANDIDATE_SOURCE", "seed")
	t.Setenv("SEED_FILE", "testdata/seed.json")
	t.Setenv("PRESET_STORE", "redis")
	t.Setenv("MIN_RESULT_THRESHOLD", "8")
	t.Setenv("DISTANCE_STEP_KM", "12.5")
	t.Setenv("MIN_SCORE", "60")
	t.Setenv("SCORING_WORKERS", "3")
	t.Setenv("REQUEST_TIMEOUT", "nonsense")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	m := cfg.Matching()
	assert.Equal(t, 8, m.Recommender.MinimumResults)
	assert.Equal(t, 12.5, m.Recommender.DistanceStepKm)
	assert.Equal(t, 60, m.Recommender.MinimumScore)
	assert.Equal(t, 3, m.ScoringWorkers)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment:        "development",
			DatabaseURL:        "postgres://localhost/kiekky",
			RedisURL:           "redis://localhost:6379/0",
			CandidateSource:    "postgres",
			PresetStore:        "memory",
			MaxCandidates:      100,
			JWTSecret:          defaultJWTSecret,
			MinResultThreshold: 5,
			DistanceStepKm:     25,
			AgeStep:            5,
			ScoringWorkers:     2,
			ParallelThreshold:  10,
			DefaultPageLimit:   20,
			MaxPageLimit:       100,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "default secret in production", mutate: func(c *Config) { c.Environment = "production" }},
		{name: "postgres without DSN", mutate: func(c *Config) { c.DatabaseURL = "" }},
		{name: "seed without file", mutate: func(c *Config) { c.CandidateSource = "seed" }},
		{name: "unknown source", mutate: func(c *Config) { c.CandidateSource = "mongo" }},
		{name: "redis without url", mutate: func(c *Config) { c.PresetStore = "redis"; c.RedisURL = "" }},
		{name: "unknown store", mutate: func(c *Config) { c.PresetStore = "disk" }},
		{name: "zero threshold", mutate: func(c *Config) { c.MinResultThreshold = 0 }},
		{name: "zero step", mutate: func(c *Config) { c.DistanceStepKm = 0 }},
		{name: "score out of range", mutate: func(c *Config) { c.MinScore = 101 }},
		{name: "no workers", mutate: func(c *Config) { c.ScoringWorkers = 0 }},
		{name: "max page below default", mutate: func(c *Config) { c.MaxPageLimit = 10 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
