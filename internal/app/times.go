package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrBadTime is returned when a clock time is not a valid 24-hour "HH:MM".
var ErrBadTime = fmt.Errorf("clock time must be \"HH:MM\" in 24-hour format")

// NormalizeTime parses a 24-hour clock time and returns its canonical
// zero-padded "HH:MM" form. Seconds are not allowed.
func NormalizeTime(raw string) (string, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return "", ErrBadTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return "", ErrBadTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return "", ErrBadTime
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// NormalizeTimes canonicalizes a dose-time set: each entry parsed and
// zero-padded, duplicates collapsed, result sorted ascending. Canonical
// "HH:MM" strings order lexicographically the same as by time of day.
func NormalizeTimes(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		t, err := NormalizeTime(r)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: %w", r, err)
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}
