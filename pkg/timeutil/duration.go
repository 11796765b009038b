// Package timeutil parses the human-friendly dates and windows accepted on
// the command line.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]time.Duration{
		"h":      time.Hour,
		"hr":     time.Hour,
		"hrs":    time.Hour,
		"hour":   time.Hour,
		"hours":  time.Hour,
		"d":      day,
		"day":    day,
		"days":   day,
		"w":      week,
		"wk":     week,
		"wks":    week,
		"week":   week,
		"weeks":  week,
		"mo":     month,
		"month":  month,
		"months": month,
		"y":      year,
		"yr":     year,
		"year":   year,
		"years":  year,
	}
)

// ParseWindow parses a duration such as "3d", "1w" or "1mo2w" and returns it
// with a canonical, compact label. Months are 30 days and years 365.
func ParseWindow(input string) (time.Duration, string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return 0, "", fmt.Errorf("empty duration")
	}

	remaining := trimmed
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported duration unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("duration must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration using y/mo/w/d/h tokens; anything below an
// hour is dropped.
func FormatWindow(d time.Duration) string {
	units := []struct {
		label string
		value time.Duration
	}{
		{"y", year},
		{"mo", month},
		{"w", week},
		{"d", day},
		{"h", time.Hour},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0h"
	}
	return strings.Join(parts, "")
}
