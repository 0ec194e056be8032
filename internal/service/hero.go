package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"deadlock-tracker/internal/api"
	"deadlock-tracker/internal/config"
	"deadlock-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type HeroService struct {
	client     *api.Client
	base       string
	assetsBase string
	logger     zerolog.Logger
}

func NewHeroService(client *api.Client, cfg *config.Config, logger zerolog.Logger) *HeroService {
	return &HeroService{client: client, base: cfg.APIBase, assetsBase: cfg.AssetsBase, logger: logger}
}

func (s *HeroService) GetHeroBuilds(ctx context.Context, heroID int) ([]domain.HeroBuild, error) {
	body, err := s.client.FetchWithCache(ctx, api.BuildsURL(s.base, heroID))
	if err != nil {
		s.logger.Error().Err(err).Int("hero_id", heroID).Msg("failed to fetch builds")
		return nil, fmt.Errorf("failed to fetch builds: %w", err)
	}
	builds, err := api.ParseBuilds(body, heroID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse builds: %w", err)
	}

	sort.SliceStable(builds, func(i, j int) bool {
		return builds[i].Favorites > builds[j].Favorites
	})
	return builds, nil
}

// GetHeroAnalytics passes query through to the analytics endpoint and
// returns heroes ordered by win rate.
func (s *HeroService) GetHeroAnalytics(ctx context.Context, query url.Values) ([]domain.HeroAnalytics, error) {
	body, err := s.client.FetchWithCache(ctx, api.AnalyticsURL(s.base, query))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch analytics")
		return nil, fmt.Errorf("failed to fetch analytics: %w", err)
	}
	heroes, err := api.ParseHeroAnalytics(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analytics: %w", err)
	}

	sort.SliceStable(heroes, func(i, j int) bool {
		return heroes[i].WinRate > heroes[j].WinRate
	})
	return heroes, nil
}

func (s *HeroService) GetHeroAssets(ctx context.Context) ([]domain.HeroAsset, error) {
	body, err := s.client.FetchWithCache(ctx, api.HeroesURL(s.assetsBase))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch hero assets")
		return nil, fmt.Errorf("failed to fetch hero assets: %w", err)
	}
	heroes, err := api.ParseHeroAssets(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hero assets: %w", err)
	}

	for i := range heroes {
		if heroes[i].Slug == "" {
			continue
		}
		if _, ok := heroes[i].Images["card"]; !ok {
			heroes[i].Images["card"] = api.HeroAssetURL(s.assetsBase, heroes[i].Slug, "card")
		}
	}
	return heroes, nil
}

func (s *HeroService) ItemAssetURL(slug string) string {
	return api.ItemAssetURL(s.assetsBase, slug)
}
