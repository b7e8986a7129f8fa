// Package platform normalizes free-text platform names (OCR output, user
// searches) to canonical platform identifiers.
package platform

import (
	"strings"

	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// alias pairs a free-text key with its canonical platform. The slice order is
// part of the contract: substring fallback scans aliases in this order and
// the first containment wins.
type alias struct {
	key string
	id  domain.PlatformID
}

// aliases is the canonical alias table. Keys are lowercase.
var aliases = []alias{
	{"ps2", domain.PlatformPS2},
	{"playstation 2", domain.PlatformPS2},
	{"ps3", domain.PlatformPS3},
	{"playstation 3", domain.PlatformPS3},
	{"ps4", domain.PlatformPS4},
	{"playstation 4", domain.PlatformPS4},
	{"xbox", domain.PlatformXbox},
	{"xbox 360", domain.PlatformXbox360},
	{"switch", domain.PlatformSwitch},
	{"nintendo switch", domain.PlatformSwitch},
	{"wii", domain.PlatformWii},
	{"ds", domain.PlatformDS},
	{"dreamcast", domain.PlatformDreamcast},
	{"sega dreamcast", domain.PlatformDreamcast},
	{"mastersystem", domain.PlatformMasterSystem},
	{"master system", domain.PlatformMasterSystem},
	{"genesis", domain.PlatformGenesis},
	{"megadrive", domain.PlatformGenesis},
	{"mega drive", domain.PlatformGenesis},
	{"all", domain.PlatformAll},
}

// exact is the exact-match index over aliases. Later duplicates would lose,
// but the table has none.
var exact = func() map[string]domain.PlatformID {
	m := make(map[string]domain.PlatformID, len(aliases))
	for _, a := range aliases {
		if _, ok := m[a.key]; !ok {
			m[a.key] = a.id
		}
	}
	return m
}()

// Normalize maps a free-text platform string to a PlatformID.
//
// The input is lowercased and trimmed, then checked against the alias table
// for an exact match. Failing that, aliases (except "all") are scanned in
// table order and the first alias contained in the input wins. Unmatched or
// empty input normalizes to PlatformAll.
func Normalize(input string) domain.PlatformID {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return domain.PlatformAll
	}

	if id, ok := exact[s]; ok {
		return id
	}

	for _, a := range aliases {
		if a.key == "all" {
			continue
		}
		if strings.Contains(s, a.key) {
			return a.id
		}
	}

	return domain.PlatformAll
}

// Known reports whether id is one of the canonical platform identifiers.
func Known(id domain.PlatformID) bool {
	for _, a := range aliases {
		if a.id == id {
			return true
		}
	}
	return false
}

// IDs returns the canonical platform identifiers in table order, without
// duplicates.
func IDs() []domain.PlatformID {
	seen := make(map[domain.PlatformID]bool, len(aliases))
	var out []domain.PlatformID
	for _, a := range aliases {
		if !seen[a.id] {
			seen[a.id] = true
			out = append(out, a.id)
		}
	}
	return out
}
