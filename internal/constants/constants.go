package constants

import "time"

const (
	CacheTTL           = 5 * time.Minute
	MinRequestInterval = 1 * time.Second
	RateLimitCooldown  = 60 * time.Second
	PlayerFetchDelay   = 250 * time.Millisecond
)

const (
	// long enough to sit out one rate limit cooldown
	RequestTimeout = 2 * time.Minute
	// a whole lobby walks through the limiter one player at a time
	BatchRequestTimeout = 5 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DeadlockAPIBase    = "https://api.deadlock-api.com/v1"
	DeadlockAssetsBase = "https://assets.deadlock-api.com"
	SteamWebAPIBase    = "https://api.steampowered.com"
)

const (
	DefaultHistoryLimit     = 50
	DefaultLeaderboardLimit = 100
	RecentFormLength        = 10
	MaxSteamIDsPerRequest   = 100
)
