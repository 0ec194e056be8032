package domain

import (
	"time"
)

type MatchRecord struct {
	MatchID         uint64             `json:"matchId"`
	DurationSeconds int                `json:"durationSeconds"`
	StartTime       time.Time          `json:"startTime"`
	WinningTeam     Team               `json:"winningTeam"`
	Players         []PlayerMatchEntry `json:"players"`
}

// Team returns the players of one side in lobby order.
func (m *MatchRecord) Team(team Team) []PlayerMatchEntry {
	var players []PlayerMatchEntry
	for _, p := range m.Players {
		if p.Team == team {
			players = append(players, p)
		}
	}
	return players
}

type PlayerMatchEntry struct {
	AccountID     uint32 `json:"accountId"`
	PlayerSlot    int    `json:"playerSlot"`
	Team          Team   `json:"team"`
	HeroID        int    `json:"heroId"`
	Kills         int    `json:"kills"`
	Deaths        int    `json:"deaths"`
	Assists       int    `json:"assists"`
	PlayerDamage  int    `json:"playerDamage"`
	HealingOutput int    `json:"healingOutput"`
	NetWorth      int    `json:"netWorth"`
	LastHits      int    `json:"lastHits"`
	Denies        int    `json:"denies"`
	Level         int    `json:"level"`

	// derived
	KDA               float64 `json:"kda"`
	KillsPerMinute    float64 `json:"killsPerMinute"`
	NetWorthPerMinute float64 `json:"netWorthPerMinute"`
	DamagePerMinute   float64 `json:"damagePerMinute"`
}

// HistoryMatch is one row of a player's match history.
type HistoryMatch struct {
	MatchID         uint64    `json:"matchId"`
	HeroID          int       `json:"heroId"`
	HeroLevel       int       `json:"heroLevel"`
	StartTime       time.Time `json:"startTime"`
	DurationSeconds int       `json:"durationSeconds"`
	Team            Team      `json:"team"`
	MatchResult     int       `json:"matchResult"`
	Kills           int       `json:"kills"`
	Deaths          int       `json:"deaths"`
	Assists         int       `json:"assists"`
	NetWorth        int       `json:"netWorth"`
	LastHits        int       `json:"lastHits"`
	Denies          int       `json:"denies"`
}

func (m HistoryMatch) Won() bool {
	return m.MatchResult == 1
}

type PlayerHistoryStats struct {
	TotalMatches   int               `json:"totalMatches"`
	Wins           int               `json:"wins"`
	Losses         int               `json:"losses"`
	WinRate        float64           `json:"winRate"`
	AverageKills   float64           `json:"averageKills"`
	AverageDeaths  float64           `json:"averageDeaths"`
	AverageAssists float64           `json:"averageAssists"`
	AverageKDA     float64           `json:"averageKDA"`
	HeroStats      map[int]HeroStats `json:"heroStats"`
	RecentForm     []string          `json:"recentForm"`
}

type HeroStats struct {
	Matches    int     `json:"matches"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"winRate"`
	AverageKDA float64 `json:"averageKDA"`
}

type LeaderboardEntry struct {
	Rank        int      `json:"rank"`
	AccountName string   `json:"accountName"`
	AccountIDs  []uint32 `json:"accountIds"`
	BadgeLevel  int      `json:"badgeLevel"`
	RankedRank  int      `json:"rankedRank"`
	TopHeroIDs  []int    `json:"topHeroIds"`
	Region      string   `json:"region"`
}

type HeroBuild struct {
	ID          int       `json:"id"`
	HeroID      int       `json:"heroId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AuthorID    uint32    `json:"authorId"`
	Favorites   int       `json:"favorites"`
	Version     int       `json:"version"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type HeroAnalytics struct {
	HeroID      int     `json:"heroId"`
	Matches     int     `json:"matches"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"winRate"`
	PickRate    float64 `json:"pickRate"`
	AverageKDA  float64 `json:"averageKDA"`
	TotalKills  int     `json:"totalKills"`
	TotalDeaths int     `json:"totalDeaths"`
}

type HeroAsset struct {
	ID     int               `json:"id"`
	Name   string            `json:"name"`
	Slug   string            `json:"slug"`
	Images map[string]string `json:"images"`
}
