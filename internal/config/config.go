package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed election.yaml
var electionYAML []byte

type Config struct {
	Database  DatabaseConfig
	Extractor ExtractorConfig
	Matcher   MatcherConfig
	Auth      AuthConfig
	Election  ElectionConfig
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type ExtractorConfig struct {
	URL     string        // face extraction service, defaults to http://localhost:8000
	Dim     int           // expected template dimension (default 128)
	Timeout time.Duration // per-request timeout (default 30s)
}

type MatcherConfig struct {
	Threshold float64 // maximum match distance, range (0, 1], default 0.5
}

type AuthConfig struct {
	Secret   string        // HS256 signing secret for session tokens
	TokenTTL time.Duration // session token lifetime (default 2h)
}

// ElectionConfig holds the election metadata and the candidate roster.
// Defaults come from the embedded election.yaml; ELECTION_CANDIDATES
// (comma-separated) overrides the roster per deployment.
type ElectionConfig struct {
	Name       string   `yaml:"name"`
	Candidates []string `yaml:"candidates"`
}

// HasCandidate reports whether the name is part of the roster.
func (e *ElectionConfig) HasCandidate(name string) bool {
	for _, c := range e.Candidates {
		if c == name {
			return true
		}
	}
	return false
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envDuration reads an environment variable and parses it as a positive duration.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultVal
}

func Load() *Config {
	var election ElectionConfig
	if err := yaml.Unmarshal(electionYAML, &election); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded election.yaml: " + err.Error())
	}

	if env := os.Getenv("ELECTION_CANDIDATES"); env != "" {
		election.Candidates = nil
		for _, c := range strings.Split(env, ",") {
			if c = strings.TrimSpace(c); c != "" {
				election.Candidates = append(election.Candidates, c)
			}
		}
	}
	if env := os.Getenv("ELECTION_NAME"); env != "" {
		election.Name = env
	}

	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Extractor: ExtractorConfig{
			URL:     os.Getenv("EXTRACTOR_URL"),
			Dim:     envInt("EXTRACTOR_DIM", 128),
			Timeout: envDuration("EXTRACTOR_TIMEOUT", 30*time.Second),
		},
		Matcher: MatcherConfig{
			Threshold: envFloat("MATCHER_THRESHOLD", 0.5),
		},
		Auth: AuthConfig{
			Secret:   os.Getenv("AUTH_SECRET"),
			TokenTTL: envDuration("AUTH_TOKEN_TTL", 2*time.Hour),
		},
		Election: election,
	}
}
