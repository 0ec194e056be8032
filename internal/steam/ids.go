package steam

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leighmacdonald/steamid/v4/steamid"
)

// SteamID64Base is the SteamID64 of account ID 0 for individual accounts
// in the public universe.
const SteamID64Base uint64 = 76561197960265728

func AccountIDToSteamID64(accountID uint32) uint64 {
	return uint64(accountID) + SteamID64Base
}

// SteamID64ToAccountID assumes id is a SteamID64 of an individual account.
func SteamID64ToAccountID(id uint64) uint32 {
	return uint32(id - SteamID64Base)
}

// NormalizeAccountID accepts either a 32-bit account ID or a SteamID64.
func NormalizeAccountID(id uint64) (uint32, error) {
	switch {
	case id >= SteamID64Base && id-SteamID64Base <= math.MaxUint32:
		return SteamID64ToAccountID(id), nil
	case id <= math.MaxUint32:
		return uint32(id), nil
	}
	return 0, fmt.Errorf("%d is neither an account ID nor a SteamID64", id)
}

// ParseAccountID reads a player identifier as typed by a user: a decimal
// account ID or SteamID64, or a Steam2/Steam3 textual ID.
func ParseAccountID(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty player id")
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return NormalizeAccountID(n)
	}

	sid := steamid.New(s)
	if !sid.Valid() {
		return 0, fmt.Errorf("invalid player id %q", s)
	}
	return uint32(sid.AccountID), nil
}

func FormatSteamID64(accountID uint32) string {
	return strconv.FormatUint(AccountIDToSteamID64(accountID), 10)
}
