// internal/config/config.go
// Centralized configuration management
// Loads from environment variables with sensible defaults

package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/imadgeboyega/kiekky-match/internal/dating"
)

const defaultJWTSecret = "your-super-secret-key-change-this-in-production"

// Config holds all application configuration
type Config struct {
	// Server
	Port            string
	Environment     string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Storage
	DatabaseURL     string
	RedisURL        string
	CandidateSource string // "postgres" or "seed"
	SeedFile        string
	PresetStore     string // "memory" or "redis"
	MaxCandidates   int

	// Security
	JWTSecret string

	// Matching
	MinResultThreshold int
	DistanceStepKm     float64
	AgeStep            int
	MinScore           int
	MaxRecommendations int
	ScoringWorkers     int
	ParallelThreshold  int
	DefaultPageLimit   int
	MaxPageLimit       int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		// Server
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", "10s"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", "15s"),

		// Storage
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CandidateSource: getEnv("CANDIDATE_SOURCE", "postgres"),
		SeedFile:        getEnv("SEED_FILE", ""),
		PresetStore:     getEnv("PRESET_STORE", "memory"),
		MaxCandidates:   getEnvInt("MAX_CANDIDATES", 2000),

		// Security
		JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),

		// Matching
		MinResultThreshold: getEnvInt("MIN_RESULT_THRESHOLD", 5),
		DistanceStepKm:     getEnvFloat("DISTANCE_STEP_KM", 25),
		AgeStep:            getEnvInt("AGE_STEP", 5),
		MinScore:           getEnvInt("MIN_SCORE", 0),
		MaxRecommendations: getEnvInt("MAX_RECOMMENDATIONS", 0),
		ScoringWorkers:     getEnvInt("SCORING_WORKERS", runtime.GOMAXPROCS(0)),
		ParallelThreshold:  getEnvInt("PARALLEL_THRESHOLD", 256),
		DefaultPageLimit:   getEnvInt("DEFAULT_PAGE_LIMIT", dating.DefaultPageLimit),
		MaxPageLimit:       getEnvInt("MAX_PAGE_LIMIT", dating.MaxPageLimit),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWTSecret == defaultJWTSecret && c.IsProduction() {
		return fmt.Errorf("JWT secret must be changed for production")
	}

	switch c.CandidateSource {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("database URL is required for the postgres candidate source")
		}
	case "seed":
		if c.SeedFile == "" {
			return fmt.Errorf("seed file is required for the seed candidate source")
		}
		if c.IsProduction() {
			return fmt.Errorf("seed candidate source cannot be used in production")
		}
	default:
		return fmt.Errorf("invalid candidate source: %s", c.CandidateSource)
	}

	switch c.PresetStore {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("redis URL is required for the redis preset store")
		}
	default:
		return fmt.Errorf("invalid preset store: %s", c.PresetStore)
	}

	if c.MinResultThreshold < 1 {
		return fmt.Errorf("minimum result threshold must be positive")
	}
	if c.DistanceStepKm <= 0 || c.AgeStep < 1 {
		return fmt.Errorf("recommendation steps must be positive")
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("minimum score must be between 0 and 100")
	}
	if c.MaxRecommendations < 0 {
		return fmt.Errorf("max recommendations cannot be negative")
	}
	if c.ScoringWorkers < 1 || c.ParallelThreshold < 1 {
		return fmt.Errorf("scoring workers and parallel threshold must be positive")
	}
	if c.DefaultPageLimit < 1 || c.MaxPageLimit < c.DefaultPageLimit {
		return fmt.Errorf("invalid page limit configuration")
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("max candidates must be positive")
	}

	return nil
}

// Matching builds the match engine configuration
func (c *Config) Matching() dating.Config {
	return dating.Config{
		Weights: dating.DefaultWeights,
		Recommender: dating.RecommenderConfig{
			MinimumResults:     c.MinResultThreshold,
			DistanceStepKm:     c.DistanceStepKm,
			AgeStep:            c.AgeStep,
			MinimumScore:       c.MinScore,
			MaxRecommendations: c.MaxRecommendations,
		},
		ScoringWorkers:    c.ScoringWorkers,
		ParallelThreshold: c.ParallelThreshold,
		DefaultPageLimit:  c.DefaultPageLimit,
		MaxPageLimit:      c.MaxPageLimit,
	}
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration falls back to the default when the value does not parse
func getEnvDuration(key string, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
