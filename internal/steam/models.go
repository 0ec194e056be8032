package steam

import (
	"errors"
	"fmt"
)

var ErrMissingAPIKey = errors.New("STEAM_API_KEY is not configured")

// NotFoundError carries the term that failed to resolve so the UI can
// show what was searched.
type NotFoundError struct {
	Term string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no steam profile found for %q", e.Term)
}

type Player struct {
	SteamID                  string `json:"steamid"`
	PersonaName              string `json:"personaname"`
	ProfileURL               string `json:"profileurl"`
	Avatar                   string `json:"avatar"`
	AvatarMedium             string `json:"avatarmedium"`
	AvatarFull               string `json:"avatarfull"`
	PersonaState             int    `json:"personastate"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	CountryCode              string `json:"loccountrycode,omitempty"`
	TimeCreated              int64  `json:"timecreated,omitempty"`
	DeadlockAccountID        uint32 `json:"deadlockAccountId,omitempty"`
}

type PlayerSummaries struct {
	Response struct {
		Players []Player `json:"players"`
	} `json:"response"`
}

type Resolved struct {
	Resolved          bool   `json:"resolved"`
	VanityURL         string `json:"vanityurl"`
	SteamID           string `json:"steamid"`
	DeadlockAccountID uint32 `json:"deadlockAccountId"`
}

type resolveVanityResponse struct {
	Response struct {
		SteamID string `json:"steamid"`
		Success int    `json:"success"`
		Message string `json:"message"`
	} `json:"response"`
}
