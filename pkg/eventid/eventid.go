// Package eventid generates human-readable event identifiers such as GRG007.
package eventid

import (
	"fmt"
	"strconv"
	"strings"
)

// typePrefixes maps an event type to its ID prefix. Unrecognized types fall
// back to FallbackPrefix.
var typePrefixes = map[string]string{
	"grg":     "GRG",
	"course":  "COR",
	"guiding": "GUI",
}

// FallbackPrefix is used for event types without a dedicated prefix.
const FallbackPrefix = "EVT"

// PrefixFor returns the ID prefix for an event type.
func PrefixFor(eventType string) string {
	if p, ok := typePrefixes[strings.ToLower(strings.TrimSpace(eventType))]; ok {
		return p
	}
	return FallbackPrefix
}

// Next returns the next free identifier for the given prefix: one past the
// highest numeric suffix already present, zero-padded to three digits.
// Suffixes that are not purely numeric are skipped rather than rejected.
// Gaps are never reused, so an ID handed out once stays unique for the
// lifetime of the collection even if earlier rows disappear.
func Next(existing []string, prefix string) string {
	next := 1
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		suffix := id[len(prefix):]
		if !allDigits(suffix) {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
