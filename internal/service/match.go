package service

import (
	"context"
	"fmt"
	"time"

	"deadlock-tracker/internal/api"
	"deadlock-tracker/internal/config"
	"deadlock-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type MatchService struct {
	client      *api.Client
	players     *PlayerService
	base        string
	teams       domain.TeamConvention
	playerDelay time.Duration
	sleep       func(context.Context, time.Duration) error
	logger      zerolog.Logger
}

func NewMatchService(client *api.Client, players *PlayerService, cfg *config.Config, logger zerolog.Logger) *MatchService {
	return &MatchService{
		client:      client,
		players:     players,
		base:        cfg.APIBase,
		teams:       cfg.TeamConvention,
		playerDelay: cfg.PlayerFetchDelay,
		sleep:       api.SleepContext,
		logger:      logger,
	}
}

func (s *MatchService) GetMatchMetadata(ctx context.Context, matchID uint64) (*domain.MatchRecord, error) {
	s.logger.Debug().Uint64("match_id", matchID).Msg("getting match metadata")

	body, err := s.client.FetchWithCache(ctx, api.MatchMetadataURL(s.base, matchID))
	if err != nil {
		s.logger.Error().Err(err).Uint64("match_id", matchID).Msg("failed to fetch match metadata")
		return nil, fmt.Errorf("failed to fetch match metadata: %w", err)
	}

	record, err := api.ParseMatchMetadata(body, s.teams)
	if err != nil {
		return nil, fmt.Errorf("failed to parse match metadata: %w", err)
	}
	if record.MatchID == 0 {
		record.MatchID = matchID
	}

	s.logger.Debug().Uint64("match_id", matchID).Int("player_count", len(record.Players)).Msg("match metadata parsed")
	return record, nil
}

type MatchPlayer struct {
	domain.PlayerMatchEntry
	Statistics *domain.PlayerHistoryStats `json:"statistics"`
	TotalGames int                        `json:"totalGames"`
	Error      string                     `json:"error,omitempty"`
}

type MatchPlayers struct {
	Match   *domain.MatchRecord `json:"match"`
	Players []MatchPlayer       `json:"players"`
	Failed  int                 `json:"failed"`
}

// GetAllPlayersFromMatch loads the match, then each player's history one
// after another. A player whose history fails keeps its match entry and
// an Error; the rest of the lobby is still processed.
func (s *MatchService) GetAllPlayersFromMatch(ctx context.Context, matchID uint64, historyLimit int) (*MatchPlayers, error) {
	record, err := s.GetMatchMetadata(ctx, matchID)
	if err != nil {
		return nil, err
	}

	batchID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate batch id: %w", err)
	}
	logger := s.logger.With().Str("batch_id", batchID).Uint64("match_id", matchID).Logger()
	logger.Info().Int("player_count", len(record.Players)).Msg("fetching lobby histories")

	result := &MatchPlayers{
		Match:   record,
		Players: make([]MatchPlayer, 0, len(record.Players)),
	}

	for i, p := range record.Players {
		if i > 0 && s.playerDelay > 0 {
			if err := s.sleep(ctx, s.playerDelay); err != nil {
				logger.Warn().Err(err).Msg("delay between players interrupted")
			}
		}

		entry := MatchPlayer{PlayerMatchEntry: p}
		if p.AccountID == 0 {
			entry.Error = "player has no account id"
			result.Failed++
			result.Players = append(result.Players, entry)
			continue
		}

		history, err := s.players.GetPlayerMatchHistory(ctx, uint64(p.AccountID), HistoryOptions{Limit: historyLimit})
		if err != nil {
			logger.Warn().Err(err).Uint32("account_id", p.AccountID).Msg("player history failed, continuing")
			entry.Error = err.Error()
			result.Failed++
		} else {
			entry.Statistics = history.Statistics
			entry.TotalGames = history.TotalMatches
		}
		result.Players = append(result.Players, entry)
	}

	logger.Info().Int("failed", result.Failed).Msg("lobby histories fetched")
	return result, nil
}
