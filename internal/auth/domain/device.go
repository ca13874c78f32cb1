package domain

import "regexp"

// LegacySeasonMax is the newest season grandfathered out of device-binding
// enforcement. Clients on seasons 1 through LegacySeasonMax present no
// hardware id and skip every binding check.
const LegacySeasonMax = 7

// IsLegacySeason reports whether the client season predates device binding.
func IsLegacySeason(season int) bool {
	return season >= 1 && season <= LegacySeasonMax
}

var deviceIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

// ValidDeviceID reports whether s is a well-formed hardware identifier.
func ValidDeviceID(s string) bool {
	return deviceIDPattern.MatchString(s)
}
