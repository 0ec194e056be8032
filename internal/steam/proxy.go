package steam

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"deadlock-tracker/internal/api"
	"deadlock-tracker/internal/config"

	"github.com/rs/zerolog"
)

// ProxyClient reads Steam profiles through the /api/steam-user proxy so the
// API key never leaves the proxy. Requests share the caller's cache and
// rate limit budget.
type ProxyClient struct {
	client   *api.Client
	proxyURL string
	logger   zerolog.Logger
}

func NewProxyClient(client *api.Client, proxyURL string, logger zerolog.Logger) *ProxyClient {
	return &ProxyClient{
		client:   client,
		proxyURL: proxyURL,
		logger:   logger.With().Str("component", "steam_proxy_client").Logger(),
	}
}

func NewProxyClientFromConfig(client *api.Client, cfg *config.Config, logger zerolog.Logger) *ProxyClient {
	return NewProxyClient(client, cfg.SteamProxyURL, logger)
}

// GetSteamUsers returns nil without error when the proxy is unconfigured
// or knows none of the ids; the UI renders a fallback label in that case.
func (p *ProxyClient) GetSteamUsers(ctx context.Context, accountIDs []uint32) ([]Player, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	steamIDs := make([]uint64, len(accountIDs))
	for i, id := range accountIDs {
		steamIDs[i] = AccountIDToSteamID64(id)
	}

	u := p.proxyURL + "?" + url.Values{"steamids": {JoinSteamIDs(steamIDs)}}.Encode()
	resp, err := api.FetchInto[PlayerSummaries](ctx, p.client, u)
	if err != nil {
		if softFailure(err) {
			p.logger.Warn().Err(err).Int("count", len(accountIDs)).Msg("steam users unavailable")
			return nil, nil
		}
		return nil, err
	}

	players := resp.Response.Players
	for i := range players {
		if id, err := strconv.ParseUint(players[i].SteamID, 10, 64); err == nil {
			if accountID, err := NormalizeAccountID(id); err == nil {
				players[i].DeadlockAccountID = accountID
			}
		}
	}
	if len(players) == 0 {
		return nil, nil
	}
	return players, nil
}

func (p *ProxyClient) GetSteamUser(ctx context.Context, accountID uint32) (*Player, error) {
	players, err := p.GetSteamUsers(ctx, []uint32{accountID})
	if err != nil || len(players) == 0 {
		return nil, err
	}
	return &players[0], nil
}

// ResolveVanityURL returns nil without error when the name does not
// resolve or the proxy is unconfigured.
func (p *ProxyClient) ResolveVanityURL(ctx context.Context, vanity string) (*Resolved, error) {
	u := p.proxyURL + "?" + url.Values{"vanityurl": {vanity}}.Encode()
	resp, err := api.FetchInto[Resolved](ctx, p.client, u)
	if err != nil {
		if softFailure(err) {
			p.logger.Info().Err(err).Str("vanityurl", vanity).Msg("vanity url not resolved")
			return nil, nil
		}
		return nil, err
	}
	if !resp.Resolved {
		return nil, nil
	}
	if resp.DeadlockAccountID == 0 {
		if id, err := strconv.ParseUint(resp.SteamID, 10, 64); err == nil {
			resp.DeadlockAccountID, _ = NormalizeAccountID(id)
		}
	}
	return resp, nil
}

func softFailure(err error) bool {
	var httpErr *api.HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	switch httpErr.StatusCode {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError:
		return true
	}
	return false
}
