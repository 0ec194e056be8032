package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"deadlock-tracker/internal/domain"
	"deadlock-tracker/internal/stats"
)

// Field precedence per logical value. The first key present with a usable
// value wins; absent everywhere means 0.
var (
	fieldMatchID   = []string{"match_id", "matchId"}
	fieldAccountID = []string{"account_id", "accountId"}
	fieldHeroID    = []string{"hero_id", "heroId"}
	fieldHeroLevel = []string{"hero_level", "level"}
	fieldDuration  = []string{"match_duration_s", "duration_s"}
	fieldStartTime = []string{"start_time", "startTime"}
	fieldTeam      = []string{"player_team", "team"}
	fieldSlot      = []string{"player_slot", "playerSlot"}
	fieldResult    = []string{"match_result", "matchResult"}
	fieldKills     = []string{"player_kills", "kills"}
	fieldDeaths    = []string{"player_deaths", "deaths"}
	fieldAssists   = []string{"player_assists", "assists"}
	fieldNetWorth  = []string{"net_worth", "player_net_worth"}
	fieldLastHits  = []string{"last_hits", "creep_kills"}
	fieldDenies    = []string{"denies", "player_denies"}
	fieldDamage    = []string{"player_damage", "hero_damage"}
	fieldHealing   = []string{"player_healing", "healing_output"}
	fieldLevel     = []string{"level", "hero_level"}
)

func MatchMetadataURL(base string, matchID uint64) string {
	return fmt.Sprintf("%s/matches/%d/metadata", base, matchID)
}

func MatchHistoryURL(base string, accountID uint32, limit, offset int, onlyStoredHistory bool) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("only_stored_history", strconv.FormatBool(onlyStoredHistory))
	return fmt.Sprintf("%s/players/%d/match-history?%s", base, accountID, q.Encode())
}

func LeaderboardURL(base, region string, limit int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if region != "" {
		q.Set("region", region)
	}
	return fmt.Sprintf("%s/leaderboard?%s", base, q.Encode())
}

func BuildsURL(base string, heroID int) string {
	return fmt.Sprintf("%s/builds/%d", base, heroID)
}

// AnalyticsURL encodes query in sorted key order so equal queries share a
// cache entry.
func AnalyticsURL(base string, query url.Values) string {
	if len(query) == 0 {
		return base + "/analytics"
	}
	return base + "/analytics?" + query.Encode()
}

func HeroesURL(assetsBase string) string {
	return assetsBase + "/v2/heroes"
}

// HeroAssetURL points at a hero image on the assets CDN; kind is e.g.
// "card" or "minimap".
func HeroAssetURL(assetsBase, slug, kind string) string {
	return fmt.Sprintf("%s/images/heroes/%s_%s.webp", assetsBase, strings.ToLower(slug), kind)
}

func ItemAssetURL(assetsBase, slug string) string {
	return fmt.Sprintf("%s/images/items/%s.webp", assetsBase, strings.ToLower(slug))
}

// ParseMatchMetadata accepts {match_info: {...}} or the bare match object.
func ParseMatchMetadata(body json.RawMessage, teams domain.TeamConvention) (*domain.MatchRecord, error) {
	var root object
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, &ShapeError{Want: "match object"}
	}
	info, ok := root.child("match_info", "matchInfo")
	if !ok {
		info = root
	}

	duration := info.num("duration_s", "match_duration_s")
	record := &domain.MatchRecord{
		MatchID:         info.id(fieldMatchID...),
		DurationSeconds: duration,
		StartTime:       info.unix(fieldStartTime...),
		WinningTeam:     teams.Normalize(info.team("winning_team", "winningTeam"), 0),
	}

	for _, p := range info.children("players") {
		record.Players = append(record.Players, parsePlayerEntry(p, duration, teams))
	}
	return record, nil
}

// summary prefers the final sample of the per-player stats series, then
// the player's top-level field.
type summary struct {
	player object
	last   object
}

func (s summary) num(keys ...string) int {
	if s.last != nil {
		if n, ok := s.last.numOK(keys...); ok {
			return n
		}
	}
	return s.player.num(keys...)
}

func parsePlayerEntry(p object, durationSeconds int, teams domain.TeamConvention) domain.PlayerMatchEntry {
	s := summary{player: p}
	if series := p.children("stats"); len(series) > 0 {
		s.last = series[len(series)-1]
	}

	slot := p.num(fieldSlot...)
	entry := domain.PlayerMatchEntry{
		AccountID:     uint32(p.id(fieldAccountID...)),
		PlayerSlot:    slot,
		Team:          teams.Normalize(p.team(fieldTeam...), slot),
		HeroID:        p.num(fieldHeroID...),
		Kills:         s.num(fieldKills...),
		Deaths:        s.num(fieldDeaths...),
		Assists:       s.num(fieldAssists...),
		PlayerDamage:  s.num(fieldDamage...),
		HealingOutput: s.num(fieldHealing...),
		NetWorth:      s.num(fieldNetWorth...),
		LastHits:      s.num(fieldLastHits...),
		Denies:        s.num(fieldDenies...),
		Level:         s.num(fieldLevel...),
	}

	entry.KDA = stats.KDA(entry.Kills, entry.Deaths, entry.Assists)
	entry.KillsPerMinute = stats.PerMinute(entry.Kills, durationSeconds)
	entry.NetWorthPerMinute = stats.PerMinute(entry.NetWorth, durationSeconds)
	entry.DamagePerMinute = stats.PerMinute(entry.PlayerDamage, durationSeconds)
	return entry
}

// ParseMatchHistory accepts a bare array or {matches: [...]}.
func ParseMatchHistory(body json.RawMessage, teams domain.TeamConvention) ([]domain.HistoryMatch, Shape, error) {
	list, err := decodeList(body, "matches")
	if err != nil {
		return nil, ShapeEmpty, err
	}

	matches := make([]domain.HistoryMatch, 0, len(list.Items))
	for _, m := range list.Items {
		matches = append(matches, domain.HistoryMatch{
			MatchID:         m.id(fieldMatchID...),
			HeroID:          m.num(fieldHeroID...),
			HeroLevel:       m.num(fieldHeroLevel...),
			StartTime:       m.unix(fieldStartTime...),
			DurationSeconds: m.num(fieldDuration...),
			Team:            teams.Normalize(m.team(fieldTeam...), m.num(fieldSlot...)),
			MatchResult:     m.num(fieldResult...),
			Kills:           m.num(fieldKills...),
			Deaths:          m.num(fieldDeaths...),
			Assists:         m.num(fieldAssists...),
			NetWorth:        m.num(fieldNetWorth...),
			LastHits:        m.num(fieldLastHits...),
			Denies:          m.num(fieldDenies...),
		})
	}
	return matches, list.Shape, nil
}

// ParseLeaderboard accepts a bare array, {entries: [...]} or {items: [...]}.
func ParseLeaderboard(body json.RawMessage, region string) ([]domain.LeaderboardEntry, error) {
	list, err := decodeList(body, "entries", "items")
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(list.Items))
	for i, e := range list.Items {
		entry := domain.LeaderboardEntry{
			Rank:        e.num("rank"),
			AccountName: e.text("account_name", "accountName", "name"),
			BadgeLevel:  e.num("badge_level", "badgeLevel"),
			RankedRank:  e.num("ranked_rank", "rankedRank"),
			TopHeroIDs:  e.nums("top_hero_ids", "topHeroIds"),
			Region:      e.text("region"),
		}
		if entry.Rank == 0 {
			entry.Rank = i + 1
		}
		if entry.Region == "" {
			entry.Region = region
		}
		for _, id := range e.nums("possible_account_ids", "possibleAccountIds") {
			entry.AccountIDs = append(entry.AccountIDs, uint32(id))
		}
		if id := e.id(fieldAccountID...); id != 0 && len(entry.AccountIDs) == 0 {
			entry.AccountIDs = []uint32{uint32(id)}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseBuilds accepts a bare array, {builds: [...]} or {items: [...]}; each
// element may nest the build under hero_build.
func ParseBuilds(body json.RawMessage, heroID int) ([]domain.HeroBuild, error) {
	list, err := decodeList(body, "builds", "items")
	if err != nil {
		return nil, err
	}

	builds := make([]domain.HeroBuild, 0, len(list.Items))
	for _, item := range list.Items {
		b, ok := item.child("hero_build", "heroBuild")
		if !ok {
			b = item
		}
		build := domain.HeroBuild{
			ID:          b.num("hero_build_id", "id"),
			HeroID:      b.num(fieldHeroID...),
			Name:        b.text("name"),
			Description: b.text("description"),
			AuthorID:    uint32(b.id("author_account_id", "author_id")),
			Favorites:   item.num("num_favorites", "favorites"),
			Version:     b.num("version"),
			UpdatedAt:   b.unix("last_updated_timestamp", "updated_at"),
		}
		if build.HeroID == 0 {
			build.HeroID = heroID
		}
		builds = append(builds, build)
	}
	return builds, nil
}

// ParseHeroAnalytics accepts a bare array, {items: [...]} or {heroes: [...]}.
// Pick rate is each hero's share of all hero-matches in the response.
func ParseHeroAnalytics(body json.RawMessage) ([]domain.HeroAnalytics, error) {
	list, err := decodeList(body, "items", "heroes", "data")
	if err != nil {
		return nil, err
	}

	heroes := make([]domain.HeroAnalytics, 0, len(list.Items))
	var totalMatches int
	for _, h := range list.Items {
		wins := h.num("wins")
		losses := h.num("losses")
		matches, ok := h.numOK("matches", "matches_played", "total")
		if !ok {
			matches = wins + losses
		}
		if _, ok := h.numOK("losses"); !ok {
			losses = matches - wins
		}
		kills := h.num("total_kills", "kills")
		deaths := h.num("total_deaths", "deaths")
		assists := h.num("total_assists", "assists")

		heroes = append(heroes, domain.HeroAnalytics{
			HeroID:      h.num(fieldHeroID...),
			Matches:     matches,
			Wins:        wins,
			Losses:      losses,
			WinRate:     stats.WinRate(wins, matches),
			AverageKDA:  stats.KDA(kills, deaths, assists),
			TotalKills:  kills,
			TotalDeaths: deaths,
		})
		totalMatches += matches
	}

	for i := range heroes {
		if totalMatches > 0 {
			heroes[i].PickRate = stats.Round(float64(heroes[i].Matches)/float64(totalMatches)*100, 1)
		}
	}
	return heroes, nil
}

// ParseHeroAssets reads the assets API hero list. Only string image URLs
// are kept.
func ParseHeroAssets(body json.RawMessage) ([]domain.HeroAsset, error) {
	list, err := decodeList(body, "heroes", "items")
	if err != nil {
		return nil, err
	}

	heroes := make([]domain.HeroAsset, 0, len(list.Items))
	for _, h := range list.Items {
		asset := domain.HeroAsset{
			ID:     h.num("id", "hero_id"),
			Name:   h.text("name"),
			Slug:   strings.TrimPrefix(h.text("class_name", "slug"), "hero_"),
			Images: map[string]string{},
		}
		if images, ok := h.child("images"); ok {
			for k := range images {
				if v := images.text(k); v != "" {
					asset.Images[k] = v
				}
			}
		}
		heroes = append(heroes, asset)
	}
	return heroes, nil
}
