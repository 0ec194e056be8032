package service

import (
	"context"
	"fmt"

	"deadlock-tracker/internal/api"
	"deadlock-tracker/internal/config"
	"deadlock-tracker/internal/constants"
	"deadlock-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type LeaderboardService struct {
	client *api.Client
	base   string
	logger zerolog.Logger
}

func NewLeaderboardService(client *api.Client, cfg *config.Config, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{client: client, base: cfg.APIBase, logger: logger}
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context, region string, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = constants.DefaultLeaderboardLimit
	}

	body, err := s.client.FetchWithCache(ctx, api.LeaderboardURL(s.base, region, limit))
	if err != nil {
		s.logger.Error().Err(err).Str("region", region).Msg("failed to fetch leaderboard")
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	entries, err := api.ParseLeaderboard(body, region)
	if err != nil {
		return nil, fmt.Errorf("failed to parse leaderboard: %w", err)
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	s.logger.Debug().Str("region", region).Int("count", len(entries)).Msg("leaderboard fetched")
	return entries, nil
}
