package fx

import (
	"deadlock-tracker/internal/api"
	"deadlock-tracker/internal/config"
	"deadlock-tracker/internal/logger"
	"deadlock-tracker/internal/server"
	"deadlock-tracker/internal/service"
	"deadlock-tracker/internal/steam"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// upstream clients
	fx.Provide(api.NewDeadlockClient),
	fx.Provide(steam.NewProxyClientFromConfig),
	fx.Provide(steam.NewWebAPIFromConfig),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewLeaderboardService),
	fx.Provide(service.NewHeroService),
	// server
	fx.Provide(server.NewTrackerServer),
)
