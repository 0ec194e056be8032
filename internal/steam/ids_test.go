package steam

import (
	"math"
	"testing"
)

func TestAccountIDRoundTrip(t *testing.T) {
	ids := []uint32{0, 1, 22202, 123456789, math.MaxInt32, math.MaxUint32 - 1, math.MaxUint32}
	for _, id := range ids {
		sid := AccountIDToSteamID64(id)
		if got := SteamID64ToAccountID(sid); got != id {
			t.Errorf("round trip of %d gave %d (via %d)", id, got, sid)
		}
	}
	for n := uint64(1); n <= math.MaxUint32; n = n*3 + 7 {
		id := uint32(n)
		if got := SteamID64ToAccountID(AccountIDToSteamID64(id)); got != id {
			t.Fatalf("round trip of %d gave %d", id, got)
		}
	}
}

func TestConversionIsExact(t *testing.T) {
	// above 2^53, where float64 would lose the last digits
	if got := AccountIDToSteamID64(22202); got != 76561197960287930 {
		t.Errorf("expected 76561197960287930, got %d", got)
	}
	if got := FormatSteamID64(1); got != "76561197960265729" {
		t.Errorf("expected 76561197960265729, got %s", got)
	}
}

func TestNormalizeAccountID(t *testing.T) {
	tests := []struct {
		in      uint64
		want    uint32
		wantErr bool
	}{
		{22202, 22202, false},
		{76561197960287930, 22202, false},
		{SteamID64Base, 0, false},
		{math.MaxUint32, math.MaxUint32, false},
		{SteamID64Base + math.MaxUint32 + 1, 0, true},
		{math.MaxUint32 + 1, 0, true},
	}
	for _, tt := range tests {
		got, err := NormalizeAccountID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeAccountID(%d) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeAccountID(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseAccountID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"22202", 22202, false},
		{" 76561197960287930 ", 22202, false},
		{"[U:1:22202]", 22202, false},
		{"STEAM_0:0:11101", 22202, false},
		{"", 0, true},
		{"not-a-player", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAccountID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAccountID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAccountID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
