package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"deadlock-tracker/internal/cache"
	"deadlock-tracker/internal/config"

	"github.com/rs/zerolog"
)

// Client fetches JSON through one shared TTL cache and one global request
// spacing. Every fetcher holding the same Client shares both budgets.
type Client struct {
	transport   Transport
	cache       *cache.TTL[json.RawMessage]
	now         func() time.Time
	sleep       func(context.Context, time.Duration) error
	minInterval time.Duration
	cooldown    time.Duration
	logger      zerolog.Logger

	mu          sync.Mutex
	lastRequest time.Time

	hits         atomic.Int64
	misses       atomic.Int64
	networkCalls atomic.Int64
	rateLimited  atomic.Int64
}

type Options struct {
	CacheTTL           time.Duration
	MinRequestInterval time.Duration
	RateLimitCooldown  time.Duration

	// for tests; default to time.Now and a context-aware timer
	Now   func() time.Time
	Sleep func(context.Context, time.Duration) error
}

type ClientStats struct {
	CacheHits    int64 `json:"cacheHits"`
	CacheMisses  int64 `json:"cacheMisses"`
	NetworkCalls int64 `json:"networkCalls"`
	RateLimited  int64 `json:"rateLimited"`
	CacheEntries int   `json:"cacheEntries"`
}

func NewClient(transport Transport, opts Options, logger zerolog.Logger) *Client {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = SleepContext
	}
	return &Client{
		transport:   transport,
		cache:       cache.New[json.RawMessage](opts.CacheTTL, opts.Now),
		now:         opts.Now,
		sleep:       opts.Sleep,
		minInterval: opts.MinRequestInterval,
		cooldown:    opts.RateLimitCooldown,
		logger:      logger.With().Str("component", "api_client").Logger(),
	}
}

func NewDeadlockClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return NewClient(NewFastHTTPTransport(nil), Options{
		CacheTTL:           cfg.CacheTTL,
		MinRequestInterval: cfg.MinRequestInterval,
		RateLimitCooldown:  cfg.RateLimitCooldown,
	}, logger)
}

func (c *Client) FetchWithCache(ctx context.Context, url string) (json.RawMessage, error) {
	if body, ok := c.cache.Get(url); ok {
		c.hits.Add(1)
		c.logger.Debug().Str("url", url).Msg("cache hit")
		return body, nil
	}
	c.misses.Add(1)

	if err := c.waitTurn(ctx); err != nil {
		return nil, err
	}

	c.networkCalls.Add(1)
	start := c.now()
	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Msg("request failed")
		return nil, err
	}

	c.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("duration", c.now().Sub(start)).
		Msg("upstream responded")

	if resp.StatusCode == http.StatusTooManyRequests {
		c.rateLimited.Add(1)
		c.logger.Warn().Str("url", url).Dur("cooldown", c.cooldown).Msg("rate limited by upstream, cooling down")
		if err := c.sleep(ctx, c.cooldown); err != nil {
			return nil, err
		}
		return nil, &RateLimitError{URL: url, Cooldown: c.cooldown}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp.StatusCode, url)
	}

	var body json.RawMessage
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, err
	}

	c.cache.Set(url, body)
	return body, nil
}

// FetchInto is FetchWithCache followed by a typed decode.
func FetchInto[T any](ctx context.Context, c *Client, url string) (*T, error) {
	body, err := c.FetchWithCache(ctx, url)
	if err != nil {
		return nil, err
	}
	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return &result, nil
}

// waitTurn reserves the next request slot and suspends until it starts.
// Slots are handed out under the lock so concurrent callers queue up one
// interval apart; the sleep itself happens outside it.
func (c *Client) waitTurn(ctx context.Context) error {
	c.mu.Lock()
	now := c.now()
	slot := now
	if !c.lastRequest.IsZero() {
		if next := c.lastRequest.Add(c.minInterval); next.After(now) {
			slot = next
		}
	}
	c.lastRequest = slot
	c.mu.Unlock()

	wait := slot.Sub(now)
	if wait <= 0 {
		return nil
	}
	c.logger.Debug().Dur("wait", wait).Msg("waiting for request slot")
	return c.sleep(ctx, wait)
}

func (c *Client) Stats() ClientStats {
	return ClientStats{
		CacheHits:    c.hits.Load(),
		CacheMisses:  c.misses.Load(),
		NetworkCalls: c.networkCalls.Load(),
		RateLimited:  c.rateLimited.Load(),
		CacheEntries: c.cache.Len(),
	}
}

// SleepContext suspends for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
