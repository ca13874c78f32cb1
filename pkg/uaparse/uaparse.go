// Package uaparse extracts a structured client-build descriptor from the
// User-Agent header the game client sends, e.g.
//
//	Fortnite/++Fortnite+Release-12.41-CL-13317074 Windows/10
//
// The season is the major component of the release version; the changelist
// is kept for logging only.
package uaparse

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrUnparsable reports a User-Agent without a recognizable release version.
var ErrUnparsable = errors.New("uaparse: no client build in user agent")

// Build is the parsed client-build descriptor.
type Build struct {
	Season     int    // major release number, drives policy decisions
	Version    string // full release version, e.g. "12.41"
	Changelist string // CL number when present, empty otherwise
}

var (
	releasePattern    = regexp.MustCompile(`Release-(\d+)(?:\.(\d+(?:\.\d+)*))?`)
	changelistPattern = regexp.MustCompile(`-CL-(\d+)`)
)

// Parse extracts the client build from a User-Agent value.
func Parse(userAgent string) (Build, error) {
	m := releasePattern.FindStringSubmatch(userAgent)
	if m == nil {
		return Build{}, ErrUnparsable
	}

	season, err := strconv.Atoi(m[1])
	if err != nil {
		return Build{}, ErrUnparsable
	}

	version := m[1]
	if m[2] != "" {
		version = m[1] + "." + m[2]
	}

	build := Build{Season: season, Version: version}
	if cl := changelistPattern.FindStringSubmatch(userAgent); cl != nil {
		build.Changelist = cl[1]
	}
	return build, nil
}
