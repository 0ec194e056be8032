package domain

import "testing"

func intPtr(v int) *int { return &v }

func TestTeamConventionsAgree(t *testing.T) {
	// an upstream that is internally consistent must land on the same side
	// no matter which raw field the configured convention trusts
	for slot := 1; slot <= LobbySize; slot++ {
		raw := 0
		if slot > 6 {
			raw = 1
		}
		field := TeamFromField.Normalize(intPtr(raw), slot)
		fromSlot := TeamFromSlot.Normalize(intPtr(raw), slot)
		if field != fromSlot {
			t.Errorf("slot %d team %d: team_field=%d player_slot=%d", slot, raw, field, fromSlot)
		}
		if int(field) != raw {
			t.Errorf("slot %d: expected canonical team %d, got %d", slot, raw, field)
		}
	}
}

func TestTeamConventionFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		convention TeamConvention
		rawTeam    *int
		slot       int
		want       Team
	}{
		{"field only", TeamFromField, intPtr(1), 0, Team1},
		{"slot only under field convention", TeamFromField, nil, 8, Team1},
		{"field only under slot convention", TeamFromSlot, intPtr(1), 0, Team1},
		{"slot wins under slot convention", TeamFromSlot, intPtr(0), 9, Team1},
		{"field wins under field convention", TeamFromField, intPtr(0), 9, Team0},
		{"out of range field falls back to slot", TeamFromField, intPtr(2), 10, Team1},
		{"nothing known", TeamFromSlot, nil, 0, Team0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.convention.Normalize(tt.rawTeam, tt.slot); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTeamDisplay(t *testing.T) {
	if Team0.Display() != 1 || Team1.Display() != 2 {
		t.Errorf("unexpected display labels %d/%d", Team0.Display(), Team1.Display())
	}
}

func TestParseTeamConvention(t *testing.T) {
	for _, c := range []TeamConvention{TeamFromField, TeamFromSlot} {
		parsed, err := ParseTeamConvention(c.String())
		if err != nil || parsed != c {
			t.Errorf("round trip of %v failed: %v %v", c, parsed, err)
		}
	}
	if _, err := ParseTeamConvention("dire"); err == nil {
		t.Error("expected error for unknown convention")
	}
}
