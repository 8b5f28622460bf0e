package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/talentflow-hq/talentflow/internal/simulate"
)

// Config holds all configuration for the TalentFlow server.
type Config struct {
	Server   ServerConfig
	Mirror   MirrorConfig
	Simulate SimulateConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type MirrorConfig struct {
	Backend       string // memory, redis, or postgres
	RedisURL      string
	DatabaseURL   string
	MigrationsDir string
}

type SimulateConfig struct {
	LatencyMin         time.Duration
	LatencyMax         time.Duration
	CreateFailureRate  float64
	ReorderFailureRate float64
}

type SeedConfig struct {
	OnEmpty    bool
	Jobs       int
	Candidates int
}

var validBackends = map[string]bool{
	"memory":   true,
	"redis":    true,
	"postgres": true,
}

// Load reads configuration from environment variables and returns a validated
// Config. Returns an error with a descriptive message if any required value
// is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("TALENTFLOW_PORT", 8080),
			Env:  envString("TALENTFLOW_ENV", "development"),
		},
		Mirror: MirrorConfig{
			Backend:       envString("MIRROR_BACKEND", "memory"),
			RedisURL:      os.Getenv("REDIS_URL"),
			DatabaseURL:   os.Getenv("DATABASE_URL"),
			MigrationsDir: envString("MIGRATIONS_DIR", "migrations"),
		},
		Simulate: SimulateConfig{
			LatencyMin:         envMillis("SIM_LATENCY_MIN_MS", simulate.DefaultLatencyMin),
			LatencyMax:         envMillis("SIM_LATENCY_MAX_MS", simulate.DefaultLatencyMax),
			CreateFailureRate:  envFloat("SIM_CREATE_FAILURE_RATE", simulate.DefaultCreateFailureRate),
			ReorderFailureRate: envFloat("SIM_REORDER_FAILURE_RATE", simulate.DefaultReorderFailureRate),
		},
		Seed: SeedConfig{
			OnEmpty:    envBool("SEED_ON_EMPTY", true),
			Jobs:       envInt("SEED_JOBS", 25),
			Candidates: envInt("SEED_CANDIDATES", 1000),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !validBackends[c.Mirror.Backend] {
		return fmt.Errorf("MIRROR_BACKEND must be one of memory, redis, postgres; got %q", c.Mirror.Backend)
	}
	if c.Mirror.Backend == "redis" && c.Mirror.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when MIRROR_BACKEND is redis")
	}
	if c.Mirror.Backend == "postgres" && c.Mirror.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when MIRROR_BACKEND is postgres")
	}

	if c.Simulate.LatencyMin < 0 {
		return fmt.Errorf("SIM_LATENCY_MIN_MS must not be negative")
	}
	if c.Simulate.LatencyMax < c.Simulate.LatencyMin {
		return fmt.Errorf("SIM_LATENCY_MAX_MS must be >= SIM_LATENCY_MIN_MS")
	}
	if c.Simulate.CreateFailureRate < 0 || c.Simulate.CreateFailureRate > 1 {
		return fmt.Errorf("SIM_CREATE_FAILURE_RATE must be between 0 and 1, got %v", c.Simulate.CreateFailureRate)
	}
	if c.Simulate.ReorderFailureRate < 0 || c.Simulate.ReorderFailureRate > 1 {
		return fmt.Errorf("SIM_REORDER_FAILURE_RATE must be between 0 and 1, got %v", c.Simulate.ReorderFailureRate)
	}

	if c.Seed.Jobs < 0 || c.Seed.Candidates < 0 {
		return fmt.Errorf("SEED_JOBS and SEED_CANDIDATES must not be negative")
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func envMillis(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}
