package timeutil

import (
	"testing"
	"time"
)

func TestResolveDay(t *testing.T) {
	now := time.Date(2020, 3, 1, 10, 0, 0, 0, time.Local)
	tests := map[string]struct {
		on, ago string
		want    string
		wantErr bool
	}{
		"today":        {want: "2020-03-01"},
		"iso":          {on: "2019-12-31", want: "2019-12-31"},
		"loose":        {on: "2020-2-28", want: "2020-02-28"},
		"short":        {on: "2/28", want: "2020-02-28"},
		"yesterday":    {on: "yesterday", want: "2020-02-29"},
		"ago days":     {ago: "2d", want: "2020-02-28"},
		"ago week":     {ago: "1w", want: "2020-02-23"},
		"both":         {on: "2/28", ago: "1d", wantErr: true},
		"bad date":     {on: "soon", wantErr: true},
		"bad duration": {ago: "later", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ResolveDay(tc.on, tc.ago, now)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestResolveDayShortFormLeapDay(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)
	if got, err := ResolveDay("2/29", "", now); err == nil {
		t.Fatalf("expected error for 2/29 in 2026, got %q", got)
	}
	got, err := ResolveDay("2/28", "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2026-02-28" {
		t.Fatalf("expected 2026-02-28, got %s", got)
	}

	leap := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	if got, err := ResolveDay("2/29", "", leap); err != nil || got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %q, %v", got, err)
	}
}

func TestDayID(t *testing.T) {
	if got := DayID(time.Date(2021, 1, 5, 23, 59, 0, 0, time.Local)); got != "2021-01-05" {
		t.Fatalf("unexpected day id %s", got)
	}
}
