package config

import (
	"fmt"
	"os"
	"time"

	"deadlock-tracker/internal/constants"
	"deadlock-tracker/internal/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	ServerPort  string
	LogLevel    string
	APIBase     string
	AssetsBase  string
	SteamAPIKey string

	// empty means the server's own /api/steam-user endpoint
	SteamProxyURL string

	CacheTTL           time.Duration
	MinRequestInterval time.Duration
	RateLimitCooldown  time.Duration
	PlayerFetchDelay   time.Duration

	TeamConvention domain.TeamConvention
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		APIBase:       getEnv("DEADLOCK_API_BASE", constants.DeadlockAPIBase),
		AssetsBase:    getEnv("DEADLOCK_ASSETS_BASE", constants.DeadlockAssetsBase),
		SteamAPIKey:   getEnv("STEAM_API_KEY", ""),
		SteamProxyURL: getEnv("STEAM_PROXY_URL", ""),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", constants.CacheTTL); err != nil {
		return nil, err
	}
	if cfg.MinRequestInterval, err = getDuration("MIN_REQUEST_INTERVAL", constants.MinRequestInterval); err != nil {
		return nil, err
	}
	if cfg.RateLimitCooldown, err = getDuration("RATE_LIMIT_COOLDOWN", constants.RateLimitCooldown); err != nil {
		return nil, err
	}
	if cfg.PlayerFetchDelay, err = getDuration("PLAYER_FETCH_DELAY", constants.PlayerFetchDelay); err != nil {
		return nil, err
	}

	cfg.TeamConvention, err = domain.ParseTeamConvention(getEnv("TEAM_CONVENTION", domain.TeamFromField.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid TEAM_CONVENTION: %w", err)
	}

	if cfg.SteamProxyURL == "" {
		cfg.SteamProxyURL = fmt.Sprintf("http://localhost:%s/api/steam-user", cfg.ServerPort)
	}

	if cfg.SteamAPIKey == "" {
		logger.Warn().Msg("STEAM_API_KEY is not set, steam proxy will answer 500")
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("api_base", cfg.APIBase).
		Str("steam_proxy_url", cfg.SteamProxyURL).
		Dur("cache_ttl", cfg.CacheTTL).
		Dur("min_request_interval", cfg.MinRequestInterval).
		Dur("rate_limit_cooldown", cfg.RateLimitCooldown).
		Stringer("team_convention", cfg.TeamConvention).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
