// Package buildinfo holds version metadata stamped at compile time via ldflags.
package buildinfo

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Set by goreleaser ldflags.
var (
	Version = "0.0.1"
	Commit  = "none"
	Date    = "unknown"
)

// NormalizeVersion strips every non-digit character from version and parses
// the remainder as an integer: "1.2.3" becomes 123 and "0.0.1" becomes 1.
// Config files carry this value as config-version, so the rule must not change.
func NormalizeVersion(version string) (int64, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, version)
	if digits == "" {
		return 0, fmt.Errorf("buildinfo: version %q contains no digits", version)
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("buildinfo: version %q: %w", version, err)
	}
	return n, nil
}

// String returns a one-line summary for logging.
func String() string {
	return fmt.Sprintf("tgrelay %s (commit: %s, built: %s)", Version, Commit, Date)
}
