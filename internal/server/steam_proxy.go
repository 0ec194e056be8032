package server

import (
	"errors"
	"net/http"
	"strconv"

	"deadlock-tracker/internal/constants"
	"deadlock-tracker/internal/steam"

	"github.com/rs/zerolog"
)

// SteamUser serves GET ?steamids=<csv> and GET ?vanityurl=<name>, keeping
// the Steam key on the server.
func (s *TrackerServer) SteamUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet:
	default:
		writeJSON(w, r, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
		return
	}

	if !s.steamAPI.Configured() {
		zerolog.Ctx(r.Context()).Error().Msg("steam proxy called without STEAM_API_KEY")
		writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: "Steam API key not configured"})
		return
	}

	q := r.URL.Query()
	switch {
	case q.Get("steamids") != "":
		s.steamSummaries(w, r, q.Get("steamids"))
	case q.Get("vanityurl") != "":
		s.steamVanity(w, r, q.Get("vanityurl"))
	default:
		writeJSON(w, r, http.StatusBadRequest, errorBody{
			Error:   "Missing parameter",
			Message: "steamids or vanityurl is required",
		})
	}
}

func (s *TrackerServer) steamSummaries(w http.ResponseWriter, r *http.Request, csv string) {
	ids, err := steam.ParseSteamIDs(csv)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "Invalid steamids", Details: err.Error()})
		return
	}
	if len(ids) == 0 || len(ids) > constants.MaxSteamIDsPerRequest {
		writeJSON(w, r, http.StatusBadRequest, errorBody{
			Error:   "Invalid steamids",
			Message: "between 1 and " + strconv.Itoa(constants.MaxSteamIDsPerRequest) + " ids are required",
		})
		return
	}

	summaries, err := s.steamAPI.GetPlayerSummaries(r.Context(), ids)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("count", len(ids)).Msg("player summaries failed")
		writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: "Failed to fetch player summaries", Details: err.Error()})
		return
	}

	players := summaries.Response.Players
	if len(players) == 0 {
		writeJSON(w, r, http.StatusNotFound, errorBody{
			Error:   "Player not found",
			Message: (&steam.NotFoundError{Term: csv}).Error(),
		})
		return
	}
	for i := range players {
		if id, err := strconv.ParseUint(players[i].SteamID, 10, 64); err == nil {
			players[i].DeadlockAccountID = steam.SteamID64ToAccountID(id)
		}
	}
	writeJSON(w, r, http.StatusOK, summaries)
}

func (s *TrackerServer) steamVanity(w http.ResponseWriter, r *http.Request, vanity string) {
	steamID, err := s.steamAPI.ResolveVanityURL(r.Context(), vanity)
	if err != nil {
		var notFound *steam.NotFoundError
		if errors.As(err, &notFound) {
			writeJSON(w, r, http.StatusNotFound, errorBody{Error: "Vanity URL not found", Message: notFound.Error()})
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Str("vanityurl", vanity).Msg("vanity resolution failed")
		writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: "Failed to resolve vanity URL", Details: err.Error()})
		return
	}

	writeJSON(w, r, http.StatusOK, steam.Resolved{
		Resolved:          true,
		VanityURL:         vanity,
		SteamID:           strconv.FormatUint(steamID, 10),
		DeadlockAccountID: steam.SteamID64ToAccountID(steamID),
	})
}
