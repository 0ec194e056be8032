package config

import (
	"testing"
	"time"

	"deadlock-tracker/internal/constants"
	"deadlock-tracker/internal/domain"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CACHE_TTL", "MIN_REQUEST_INTERVAL", "RATE_LIMIT_COOLDOWN", "PLAYER_FETCH_DELAY", "TEAM_CONVENTION", "STEAM_PROXY_URL", "SERVER_PORT", "DEADLOCK_API_BASE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CacheTTL != constants.CacheTTL {
		t.Errorf("expected cache ttl %v, got %v", constants.CacheTTL, cfg.CacheTTL)
	}
	if cfg.RateLimitCooldown != 60*time.Second {
		t.Errorf("expected 60s cooldown, got %v", cfg.RateLimitCooldown)
	}
	if cfg.TeamConvention != domain.TeamFromField {
		t.Errorf("expected team_field convention, got %v", cfg.TeamConvention)
	}
	if cfg.SteamProxyURL != "http://localhost:8080/api/steam-user" {
		t.Errorf("unexpected proxy url %q", cfg.SteamProxyURL)
	}
	if cfg.APIBase != constants.DeadlockAPIBase {
		t.Errorf("unexpected api base %q", cfg.APIBase)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MIN_REQUEST_INTERVAL", "3s")
	t.Setenv("TEAM_CONVENTION", "player_slot")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STEAM_PROXY_URL", "")

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinRequestInterval != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.MinRequestInterval)
	}
	if cfg.TeamConvention != domain.TeamFromSlot {
		t.Errorf("expected player_slot convention, got %v", cfg.TeamConvention)
	}
	if cfg.SteamProxyURL != "http://localhost:9090/api/steam-user" {
		t.Errorf("unexpected proxy url %q", cfg.SteamProxyURL)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"CACHE_TTL", "five minutes"},
		{"RATE_LIMIT_COOLDOWN", "-1s"},
		{"TEAM_CONVENTION", "radiant"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(zerolog.Nop()); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
