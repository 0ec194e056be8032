package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"deadlock-tracker/internal/api"
	"deadlock-tracker/internal/config"
	"deadlock-tracker/internal/constants"

	"github.com/rs/zerolog"
)

// WebAPI talks to the Steam Web API directly. It holds the API key, so only
// the proxy endpoint uses it.
type WebAPI struct {
	apiKey    string
	base      string
	transport api.Transport
	logger    zerolog.Logger
}

func NewWebAPI(apiKey, base string, transport api.Transport, logger zerolog.Logger) *WebAPI {
	return &WebAPI{
		apiKey:    apiKey,
		base:      strings.TrimRight(base, "/"),
		transport: transport,
		logger:    logger.With().Str("component", "steam_webapi").Logger(),
	}
}

func NewWebAPIFromConfig(cfg *config.Config, logger zerolog.Logger) *WebAPI {
	return NewWebAPI(cfg.SteamAPIKey, constants.SteamWebAPIBase, api.NewFastHTTPTransport(nil), logger)
}

func (w *WebAPI) Configured() bool {
	return w.apiKey != ""
}

// ResolveVanityURL returns the SteamID64 for a custom profile name.
func (w *WebAPI) ResolveVanityURL(ctx context.Context, vanity string) (uint64, error) {
	if !w.Configured() {
		return 0, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("key", w.apiKey)
	q.Set("vanityurl", vanity)

	var resp resolveVanityResponse
	if err := w.get(ctx, "/ISteamUser/ResolveVanityURL/v0001/?"+q.Encode(), &resp); err != nil {
		return 0, err
	}

	// success is 1 on a match, 42 when nothing matched
	if resp.Response.Success != 1 || resp.Response.SteamID == "" {
		w.logger.Debug().Str("vanityurl", vanity).Int("success", resp.Response.Success).Msg("vanity url not resolved")
		return 0, &NotFoundError{Term: vanity}
	}

	id, err := strconv.ParseUint(resp.Response.SteamID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid steamid %q from steam: %w", resp.Response.SteamID, err)
	}
	return id, nil
}

// GetPlayerSummaries takes SteamID64s; Steam caps a request at 100 ids.
func (w *WebAPI) GetPlayerSummaries(ctx context.Context, steamIDs []uint64) (*PlayerSummaries, error) {
	if !w.Configured() {
		return nil, ErrMissingAPIKey
	}
	if len(steamIDs) > constants.MaxSteamIDsPerRequest {
		return nil, fmt.Errorf("at most %d steam ids per request, got %d", constants.MaxSteamIDsPerRequest, len(steamIDs))
	}

	q := url.Values{}
	q.Set("key", w.apiKey)
	q.Set("steamids", JoinSteamIDs(steamIDs))

	var resp PlayerSummaries
	if err := w.get(ctx, "/ISteamUser/GetPlayerSummaries/v0002/?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (w *WebAPI) get(ctx context.Context, path string, out any) error {
	resp, err := w.transport.Get(ctx, w.base+path)
	if err != nil {
		w.logger.Error().Err(err).Msg("steam request failed")
		return fmt.Errorf("steam request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("steam API error: status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode steam response: %w", err)
	}
	return nil
}

func JoinSteamIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ",")
}

// ParseSteamIDs reads a comma separated list, accepting account IDs and
// SteamID64s alike, and returns SteamID64s.
func ParseSteamIDs(csv string) ([]uint64, error) {
	var ids []uint64
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		accountID, err := ParseAccountID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, AccountIDToSteamID64(accountID))
	}
	return ids, nil
}
