package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("expected default max open conns 25, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns != 5 {
		t.Errorf("expected default max idle conns 5, got %d", cfg.Database.MaxIdleConns)
	}
	if cfg.Extractor.Dim != 128 {
		t.Errorf("expected default dim 128, got %d", cfg.Extractor.Dim)
	}
	if cfg.Extractor.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Extractor.Timeout)
	}
	if cfg.Matcher.Threshold != 0.5 {
		t.Errorf("expected default threshold 0.5, got %v", cfg.Matcher.Threshold)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("expected default token TTL 2h, got %v", cfg.Auth.TokenTTL)
	}
}

func TestLoad_EmbeddedElection(t *testing.T) {
	cfg := Load()

	if cfg.Election.Name == "" {
		t.Error("expected election name from embedded config")
	}
	if len(cfg.Election.Candidates) == 0 {
		t.Fatal("expected candidates from embedded config")
	}
	if !cfg.Election.HasCandidate(cfg.Election.Candidates[0]) {
		t.Error("HasCandidate must accept a roster member")
	}
	if cfg.Election.HasCandidate("definitely not on the ballot") {
		t.Error("HasCandidate must reject unknown names")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("MATCHER_THRESHOLD", "0.35")
	t.Setenv("AUTH_TOKEN_TTL", "15m")
	t.Setenv("EXTRACTOR_DIM", "512")
	t.Setenv("ELECTION_NAME", "Test Election")
	t.Setenv("ELECTION_CANDIDATES", "One, Two ,Three,")

	cfg := Load()

	if cfg.Database.URL != "postgres://test" {
		t.Errorf("unexpected database URL %q", cfg.Database.URL)
	}
	if cfg.Matcher.Threshold != 0.35 {
		t.Errorf("expected threshold 0.35, got %v", cfg.Matcher.Threshold)
	}
	if cfg.Auth.TokenTTL != 15*time.Minute {
		t.Errorf("expected TTL 15m, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Extractor.Dim != 512 {
		t.Errorf("expected dim 512, got %d", cfg.Extractor.Dim)
	}
	if cfg.Election.Name != "Test Election" {
		t.Errorf("unexpected election name %q", cfg.Election.Name)
	}
	want := []string{"One", "Two", "Three"}
	if len(cfg.Election.Candidates) != len(want) {
		t.Fatalf("expected %d candidates, got %v", len(want), cfg.Election.Candidates)
	}
	for i, c := range want {
		if cfg.Election.Candidates[i] != c {
			t.Errorf("candidate %d: expected %q, got %q", i, c, cfg.Election.Candidates[i])
		}
	}
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("MATCHER_THRESHOLD", "not-a-number")
	t.Setenv("AUTH_TOKEN_TTL", "-5m")
	t.Setenv("EXTRACTOR_DIM", "0")

	cfg := Load()

	if cfg.Matcher.Threshold != 0.5 {
		t.Errorf("invalid threshold must fall back to 0.5, got %v", cfg.Matcher.Threshold)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("negative TTL must fall back to 2h, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Extractor.Dim != 128 {
		t.Errorf("zero dim must fall back to 128, got %d", cfg.Extractor.Dim)
	}
}
