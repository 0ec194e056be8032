package stats

import (
	"testing"

	"deadlock-tracker/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func TestKDA(t *testing.T) {
	tests := []struct {
		kills, deaths, assists int
		want                   float64
	}{
		{0, 0, 0, 0},
		{5, 0, 3, 8},
		{10, 0, 0, 10},
		{10, 2, 5, 7.5},
		{1, 3, 1, 0.67},
		{45, 22, 0, 2.05},
		{2, 3, 0, 0.67},
		{7, 6, 0, 1.17},
	}

	for _, tt := range tests {
		if got := KDA(tt.kills, tt.deaths, tt.assists); got != tt.want {
			t.Errorf("KDA(%d,%d,%d) = %v, want %v", tt.kills, tt.deaths, tt.assists, got, tt.want)
		}
	}
}

func TestKDAZeroDeathsIsKillsPlusAssists(t *testing.T) {
	for k := 0; k < 30; k++ {
		for a := 0; a < 30; a++ {
			if got := KDA(k, 0, a); got != float64(k+a) {
				t.Fatalf("KDA(%d,0,%d) = %v", k, a, got)
			}
		}
	}
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		wins, total int
		want        float64
	}{
		{2, 3, 67},
		{1, 3, 33},
		{1, 2, 50},
		{3, 5, 60},
		{1, 8, 13},
		{0, 0, 0},
		{7, 7, 100},
	}
	for _, tt := range tests {
		if got := WinRate(tt.wins, tt.total); got != tt.want {
			t.Errorf("WinRate(%d,%d) = %v, want %v", tt.wins, tt.total, got, tt.want)
		}
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     float64
	}{
		{2.5, 0, 3},
		{3.5, 0, 4},
		{-2.5, 0, -3},
		{0.25, 1, 0.3},
		{1.125, 2, 1.13},
	}
	for _, tt := range tests {
		if got := Round(tt.v, tt.decimals); got != tt.want {
			t.Errorf("Round(%v,%d) = %v, want %v", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestPerMinute(t *testing.T) {
	if got := PerMinute(30000, 1800); got != 1000 {
		t.Errorf("expected 1000 per minute, got %v", got)
	}
	if got := PerMinute(7, 1500); got != 0.3 {
		t.Errorf("expected 0.3 per minute, got %v", got)
	}
	if got := PerMinute(10, 0); got != 0 {
		t.Errorf("expected 0 for zero duration, got %v", got)
	}
}

func TestComputeEmpty(t *testing.T) {
	if got := Compute(nil); got != nil {
		t.Errorf("expected nil for no matches, got %+v", got)
	}
	if got := Compute([]domain.HistoryMatch{}); got != nil {
		t.Errorf("expected nil for empty slice, got %+v", got)
	}
}

func TestComputeScenario(t *testing.T) {
	matches := []domain.HistoryMatch{
		{MatchResult: 1, Kills: 10, Deaths: 2, Assists: 5, HeroID: 1},
		{MatchResult: 0, Kills: 3, Deaths: 8, Assists: 2, HeroID: 1},
		{MatchResult: 1, Kills: 7, Deaths: 1, Assists: 9, HeroID: 2},
		{MatchResult: 1, Kills: 5, Deaths: 5, Assists: 5, HeroID: 1},
		{MatchResult: 0, Kills: 1, Deaths: 6, Assists: 1, HeroID: 2},
	}

	got := Compute(matches)

	want := &domain.PlayerHistoryStats{
		TotalMatches:   5,
		Wins:           3,
		Losses:         2,
		WinRate:        60,
		AverageKills:   5.2,
		AverageDeaths:  4.4,
		AverageAssists: 4.4,
		AverageKDA:     2.18,
		HeroStats: map[int]domain.HeroStats{
			1: {Matches: 3, Wins: 2, Losses: 1, WinRate: 67, AverageKDA: 2},
			2: {Matches: 2, Wins: 1, Losses: 1, WinRate: 50, AverageKDA: 2.57},
		},
		RecentForm: []string{"W", "L", "W", "W", "L"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compute mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeRecentFormCapsAtTen(t *testing.T) {
	var matches []domain.HistoryMatch
	for i := 0; i < 15; i++ {
		result := 0
		if i%3 == 0 {
			result = 1
		}
		matches = append(matches, domain.HistoryMatch{MatchResult: result, HeroID: 4})
	}

	got := Compute(matches)
	want := []string{"W", "L", "L", "W", "L", "L", "W", "L", "L", "W"}
	if diff := cmp.Diff(want, got.RecentForm); diff != "" {
		t.Errorf("recent form mismatch (-want +got):\n%s", diff)
	}
	if got.TotalMatches != 15 || got.Wins != 5 {
		t.Errorf("expected 15 matches and 5 wins, got %d/%d", got.TotalMatches, got.Wins)
	}
	if got.WinRate != 33 {
		t.Errorf("expected 33%% win rate, got %v", got.WinRate)
	}
}

func TestComputeOnlyObservedHeroes(t *testing.T) {
	got := Compute([]domain.HistoryMatch{{HeroID: 7, MatchResult: 1, Kills: 3}})
	if len(got.HeroStats) != 1 {
		t.Fatalf("expected exactly one hero entry, got %d", len(got.HeroStats))
	}
	h := got.HeroStats[7]
	if h.WinRate != 100 || h.AverageKDA != 3 || h.Losses != 0 {
		t.Errorf("unexpected hero stats %+v", h)
	}
}
