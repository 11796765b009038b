package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout formats the id of a day page.
const DayLayout = "2006-01-02"

const (
	layoutLoose = "2006-1-2"
	layoutShort = "1/2"
)

// DayID is the page id for the local calendar day containing t.
func DayID(t time.Time) string {
	return t.Local().Format(DayLayout)
}

// ParseDay accepts "today", "yesterday", "tomorrow", "2020-02-28",
// "2020-2-28" or "2/28". The short form takes the year of now.
func ParseDay(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	}
	if t, err := time.ParseInLocation(DayLayout, s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutLoose, s, now.Location()); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(layoutShort, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or M/D", s)
	}
	day := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	if day.Month() != t.Month() || day.Day() != t.Day() {
		return time.Time{}, fmt.Errorf("invalid date %q, no such day in %d", s, now.Year())
	}
	return day, nil
}

// ResolveDay turns the --on and --ago flags into a day id. With neither set
// it is today's id. Setting both is an error.
func ResolveDay(on, ago string, now time.Time) (string, error) {
	switch {
	case on != "" && ago != "":
		return "", fmt.Errorf("--on and --ago are mutually exclusive")
	case on != "":
		t, err := ParseDay(on, now)
		if err != nil {
			return "", err
		}
		return DayID(t), nil
	case ago != "":
		d, _, err := ParseWindow(ago)
		if err != nil {
			return "", err
		}
		return DayID(now.Add(-d)), nil
	default:
		return DayID(now), nil
	}
}
