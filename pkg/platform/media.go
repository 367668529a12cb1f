package platform

import (
	"strconv"
	"strings"
)

// MediaQueryList is an evaluated media query. Listeners fire whenever
// Matches flips.
type MediaQueryList interface {
	Media() string
	Matches() bool
	// AddListener registers fn and returns a function that removes it.
	AddListener(fn func()) (remove func())
}

const (
	resolutionPrefix = "all and (resolution: "
	resolutionSuffix = "dppx)"
)

// ResolutionQuery returns a media query matching exactly dppx.
func ResolutionQuery(dppx float64) string {
	return resolutionPrefix + strconv.FormatFloat(dppx, 'g', -1, 64) + resolutionSuffix
}

// ParseResolutionQuery extracts the density from a query built by
// ResolutionQuery.
func ParseResolutionQuery(query string) (float64, bool) {
	rest, ok := strings.CutPrefix(query, resolutionPrefix)
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, resolutionSuffix)
	if !ok {
		return 0, false
	}
	dppx, err := strconv.ParseFloat(rest, 64)
	if err != nil || dppx <= 0 {
		return 0, false
	}
	return dppx, true
}
