// Package stats aggregates a player's match history. Everything here is pure.
package stats

import (
	"math"

	"deadlock-tracker/internal/constants"
	"deadlock-tracker/internal/domain"
)

// Compute aggregates matches in the order given, which callers keep
// most-recent-first. It returns nil when there is nothing to aggregate.
func Compute(matches []domain.HistoryMatch) *domain.PlayerHistoryStats {
	if len(matches) == 0 {
		return nil
	}

	type heroTally struct {
		matches, wins          int
		kills, deaths, assists int
	}

	var wins, kills, deaths, assists int
	heroes := make(map[int]*heroTally)
	form := make([]string, 0, min(len(matches), constants.RecentFormLength))

	for i, m := range matches {
		won := m.Won()
		if won {
			wins++
		}
		kills += m.Kills
		deaths += m.Deaths
		assists += m.Assists

		h, ok := heroes[m.HeroID]
		if !ok {
			h = &heroTally{}
			heroes[m.HeroID] = h
		}
		h.matches++
		if won {
			h.wins++
		}
		h.kills += m.Kills
		h.deaths += m.Deaths
		h.assists += m.Assists

		if i < constants.RecentFormLength {
			if won {
				form = append(form, "W")
			} else {
				form = append(form, "L")
			}
		}
	}

	total := len(matches)
	heroStats := make(map[int]domain.HeroStats, len(heroes))
	for id, h := range heroes {
		heroStats[id] = domain.HeroStats{
			Matches:    h.matches,
			Wins:       h.wins,
			Losses:     h.matches - h.wins,
			WinRate:    WinRate(h.wins, h.matches),
			AverageKDA: KDA(h.kills, h.deaths, h.assists),
		}
	}

	return &domain.PlayerHistoryStats{
		TotalMatches:   total,
		Wins:           wins,
		Losses:         total - wins,
		WinRate:        WinRate(wins, total),
		AverageKills:   Round(float64(kills)/float64(total), 1),
		AverageDeaths:  Round(float64(deaths)/float64(total), 1),
		AverageAssists: Round(float64(assists)/float64(total), 1),
		AverageKDA:     KDA(kills, deaths, assists),
		HeroStats:      heroStats,
		RecentForm:     form,
	}
}

// KDA is (kills+assists)/deaths rounded to two decimals; zero deaths
// counts as one so a deathless game scores kills+assists.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return Round(float64(kills+assists), 2)
	}
	return Round(float64(kills+assists)/float64(deaths), 2)
}

// WinRate is an integer percentage, 0 when total is 0.
func WinRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round(float64(wins)/float64(total)*100, 0)
}

// PerMinute is value per minute of play, one decimal.
func PerMinute(value, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return Round(float64(value)/(float64(durationSeconds)/60), 1)
}

// Round rounds half away from zero.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
