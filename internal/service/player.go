package service

import (
	"context"
	"fmt"

	"deadlock-tracker/internal/api"
	"deadlock-tracker/internal/config"
	"deadlock-tracker/internal/constants"
	"deadlock-tracker/internal/domain"
	"deadlock-tracker/internal/stats"
	"deadlock-tracker/internal/steam"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PlayerService struct {
	client *api.Client
	steam  *steam.ProxyClient
	base   string
	teams  domain.TeamConvention
	logger zerolog.Logger
}

func NewPlayerService(client *api.Client, proxy *steam.ProxyClient, cfg *config.Config, logger zerolog.Logger) *PlayerService {
	return &PlayerService{client: client, steam: proxy, base: cfg.APIBase, teams: cfg.TeamConvention, logger: logger}
}

type HistoryOptions struct {
	Limit             int
	Offset            int
	OnlyStoredHistory bool
}

type PlayerHistory struct {
	AccountID       uint32                     `json:"accountId"`
	Matches         []domain.HistoryMatch      `json:"matches"`
	Statistics      *domain.PlayerHistoryStats `json:"statistics"`
	TotalMatches    int                        `json:"totalMatches"`
	MatchesAnalyzed int                        `json:"matchesAnalyzed"`
}

// GetPlayerMatchHistory fetches one page of history and aggregates at most
// opts.Limit of its matches. Statistics is nil when the player has none.
func (s *PlayerService) GetPlayerMatchHistory(ctx context.Context, playerID uint64, opts HistoryOptions) (*PlayerHistory, error) {
	accountID, err := steam.NormalizeAccountID(playerID)
	if err != nil {
		return nil, err
	}
	if opts.Limit <= 0 {
		opts.Limit = constants.DefaultHistoryLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	s.logger.Debug().
		Uint32("account_id", accountID).
		Int("limit", opts.Limit).
		Int("offset", opts.Offset).
		Bool("only_stored_history", opts.OnlyStoredHistory).
		Msg("getting match history")

	body, err := s.client.FetchWithCache(ctx, api.MatchHistoryURL(s.base, accountID, opts.Limit, opts.Offset, opts.OnlyStoredHistory))
	if err != nil {
		s.logger.Error().Err(err).Uint32("account_id", accountID).Msg("failed to fetch match history")
		return nil, fmt.Errorf("failed to fetch match history: %w", err)
	}

	matches, shape, err := api.ParseMatchHistory(body, s.teams)
	if err != nil {
		return nil, fmt.Errorf("failed to parse match history: %w", err)
	}

	analyzed := matches
	if len(analyzed) > opts.Limit {
		analyzed = analyzed[:opts.Limit]
	}

	s.logger.Debug().
		Uint32("account_id", accountID).
		Stringer("shape", shape).
		Int("match_count", len(matches)).
		Msg("match history parsed")

	return &PlayerHistory{
		AccountID:       accountID,
		Matches:         matches,
		Statistics:      stats.Compute(analyzed),
		TotalMatches:    len(matches),
		MatchesAnalyzed: len(analyzed),
	}, nil
}

type PlayerProfile struct {
	AccountID uint32         `json:"accountId"`
	SteamID64 string         `json:"steamId64"`
	Steam     *steam.Player  `json:"steam"`
	History   *PlayerHistory `json:"history"`
}

// GetPlayerProfile loads the Steam profile and match history together.
// Both go through the same client, so they still take turns upstream.
func (s *PlayerService) GetPlayerProfile(ctx context.Context, playerID uint64, historyLimit int) (*PlayerProfile, error) {
	accountID, err := steam.NormalizeAccountID(playerID)
	if err != nil {
		return nil, err
	}

	profile := &PlayerProfile{
		AccountID: accountID,
		SteamID64: steam.FormatSteamID64(accountID),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile.Steam, err = s.steam.GetSteamUser(gCtx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		profile.History, err = s.GetPlayerMatchHistory(gCtx, uint64(accountID), HistoryOptions{Limit: historyLimit})
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Uint32("account_id", accountID).Msg("failed to build player profile")
		return nil, err
	}

	s.logger.Info().Uint32("account_id", accountID).Bool("has_steam", profile.Steam != nil).Msg("player profile built")
	return profile, nil
}

// GetSteamUsers fails soft: nil, nil when Steam data is unavailable.
func (s *PlayerService) GetSteamUsers(ctx context.Context, playerIDs []uint64) ([]steam.Player, error) {
	accountIDs := make([]uint32, 0, len(playerIDs))
	for _, id := range playerIDs {
		accountID, err := steam.NormalizeAccountID(id)
		if err != nil {
			return nil, err
		}
		accountIDs = append(accountIDs, accountID)
	}
	return s.steam.GetSteamUsers(ctx, accountIDs)
}

// ResolveVanityURL fails soft: nil, nil when the name does not resolve.
func (s *PlayerService) ResolveVanityURL(ctx context.Context, vanity string) (*steam.Resolved, error) {
	return s.steam.ResolveVanityURL(ctx, vanity)
}
