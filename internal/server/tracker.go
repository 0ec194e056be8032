package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"deadlock-tracker/internal/api"
	"deadlock-tracker/internal/constants"
	"deadlock-tracker/internal/middleware"
	"deadlock-tracker/internal/service"
	"deadlock-tracker/internal/steam"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type TrackerServer struct {
	client         *api.Client
	playerSvc      *service.PlayerService
	matchSvc       *service.MatchService
	leaderboardSvc *service.LeaderboardService
	heroSvc        *service.HeroService
	steamAPI       *steam.WebAPI
	logger         zerolog.Logger
}

func NewTrackerServer(
	client *api.Client,
	playerSvc *service.PlayerService,
	matchSvc *service.MatchService,
	leaderboardSvc *service.LeaderboardService,
	heroSvc *service.HeroService,
	steamAPI *steam.WebAPI,
	logger zerolog.Logger,
) *TrackerServer {
	return &TrackerServer{
		client:         client,
		playerSvc:      playerSvc,
		matchSvc:       matchSvc,
		leaderboardSvc: leaderboardSvc,
		heroSvc:        heroSvc,
		steamAPI:       steamAPI,
		logger:         logger,
	}
}

func (s *TrackerServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:       []string{"*"},
		OptionsSuccessStatus: http.StatusOK,
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.Health)

		r.Get("/matches/{id}", withTimeout(constants.RequestTimeout, s.GetMatch))
		r.Get("/matches/{id}/players", withTimeout(constants.BatchRequestTimeout, s.GetMatchPlayers))

		r.Get("/players/{id}/history", withTimeout(constants.RequestTimeout, s.GetPlayerHistory))
		r.Get("/players/{id}/profile", withTimeout(constants.RequestTimeout, s.GetPlayerProfile))

		r.Get("/leaderboard", withTimeout(constants.RequestTimeout, s.GetLeaderboard))

		r.Get("/heroes", withTimeout(constants.RequestTimeout, s.GetHeroes))
		r.Get("/heroes/{id}/builds", withTimeout(constants.RequestTimeout, s.GetHeroBuilds))
		r.Get("/analytics", withTimeout(constants.RequestTimeout, s.GetAnalytics))
		r.Get("/items/{slug}/image", s.GetItemImage)

		// the proxy answers every method itself
		r.HandleFunc("/steam-user", s.SteamUser)
	})
	return r
}

func withTimeout(d time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}

func (s *TrackerServer) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"client": s.client.Stats(),
	})
}

func (s *TrackerServer) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || matchID == 0 {
		badRequest(w, r, "invalid match id")
		return
	}

	record, err := s.matchSvc.GetMatchMetadata(r.Context(), matchID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, record)
}

func (s *TrackerServer) GetMatchPlayers(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || matchID == 0 {
		badRequest(w, r, "invalid match id")
		return
	}
	historyLimit, ok := queryInt(w, r, "history_limit", constants.DefaultHistoryLimit)
	if !ok {
		return
	}

	result, err := s.matchSvc.GetAllPlayersFromMatch(r.Context(), matchID, historyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *TrackerServer) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathAccountID(w, r)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", constants.DefaultHistoryLimit)
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset", 0)
	if !ok {
		return
	}
	var onlyStored bool
	if v := r.URL.Query().Get("only_stored_history"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, r, "invalid only_stored_history")
			return
		}
		onlyStored = b
	}

	history, err := s.playerSvc.GetPlayerMatchHistory(r.Context(), uint64(accountID), service.HistoryOptions{
		Limit:             limit,
		Offset:            offset,
		OnlyStoredHistory: onlyStored,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, history)
}

func (s *TrackerServer) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathAccountID(w, r)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "history_limit", constants.DefaultHistoryLimit)
	if !ok {
		return
	}

	profile, err := s.playerSvc.GetPlayerProfile(r.Context(), uint64(accountID), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *TrackerServer) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", constants.DefaultLeaderboardLimit)
	if !ok {
		return
	}

	entries, err := s.leaderboardSvc.GetLeaderboard(r.Context(), r.URL.Query().Get("region"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entries)
}

func (s *TrackerServer) GetHeroes(w http.ResponseWriter, r *http.Request) {
	heroes, err := s.heroSvc.GetHeroAssets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, heroes)
}

func (s *TrackerServer) GetHeroBuilds(w http.ResponseWriter, r *http.Request) {
	heroID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || heroID <= 0 {
		badRequest(w, r, "invalid hero id")
		return
	}

	builds, err := s.heroSvc.GetHeroBuilds(r.Context(), heroID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, builds)
}

// GetAnalytics forwards the query string as is.
func (s *TrackerServer) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	heroes, err := s.heroSvc.GetHeroAnalytics(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, heroes)
}

func (s *TrackerServer) GetItemImage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.heroSvc.ItemAssetURL(chi.URLParam(r, "slug")), http.StatusFound)
}

func pathAccountID(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	accountID, err := steam.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil || accountID == 0 {
		badRequest(w, r, "invalid player id")
		return 0, false
	}
	return accountID, true
}

func queryInt(w http.ResponseWriter, r *http.Request, key string, def int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		badRequest(w, r, "invalid "+key)
		return 0, false
	}
	return n, true
}
