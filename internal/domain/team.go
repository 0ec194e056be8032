package domain

import "fmt"

// Team is the canonical side of a lobby: 0 or 1.
type Team int

const (
	Team0 Team = 0
	Team1 Team = 1
)

const LobbySize = 12

func (t Team) Valid() bool {
	return t == Team0 || t == Team1
}

// Display is the one-indexed label the dashboard shows ("Team 1", "Team 2").
func (t Team) Display() int {
	return int(t) + 1
}

// TeamConvention decides which raw upstream field is authoritative for a
// player's side. Every parser normalizes through the single configured value.
type TeamConvention int

const (
	// TeamFromField trusts the raw team field (0|1), falling back to the slot.
	TeamFromField TeamConvention = iota
	// TeamFromSlot trusts the one-indexed player slot (1-6 => 0, 7-12 => 1),
	// falling back to the raw team field.
	TeamFromSlot
)

func ParseTeamConvention(s string) (TeamConvention, error) {
	switch s {
	case "team_field", "":
		return TeamFromField, nil
	case "player_slot":
		return TeamFromSlot, nil
	}
	return 0, fmt.Errorf("unknown team convention %q", s)
}

func (c TeamConvention) String() string {
	if c == TeamFromSlot {
		return "player_slot"
	}
	return "team_field"
}

// Normalize maps the raw team field (nil when absent) and the player slot
// (0 when absent) onto Team0 or Team1.
func (c TeamConvention) Normalize(rawTeam *int, slot int) Team {
	fromField, fieldOK := teamFromField(rawTeam)
	fromSlot, slotOK := TeamFromPlayerSlot(slot)

	switch {
	case c == TeamFromSlot && slotOK:
		return fromSlot
	case fieldOK:
		return fromField
	case slotOK:
		return fromSlot
	}
	return Team0
}

func TeamFromPlayerSlot(slot int) (Team, bool) {
	if slot < 1 || slot > LobbySize {
		return Team0, false
	}
	if slot <= LobbySize/2 {
		return Team0, true
	}
	return Team1, true
}

func teamFromField(raw *int) (Team, bool) {
	if raw == nil {
		return Team0, false
	}
	t := Team(*raw)
	if !t.Valid() {
		return Team0, false
	}
	return t, true
}
