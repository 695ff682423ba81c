package feed

import (
	"testing"
	"time"
)

func TestWindow_Split(t *testing.T) {
	t.Parallel()

	cases := []struct {
		start, end          string
		firstEnd, secondBeg string
	}{
		{start: "2025-01-01", end: "2025-12-31", firstEnd: "2025-07-02", secondBeg: "2025-07-03"},
		{start: "2025-03-01", end: "2025-03-02", firstEnd: "2025-03-01", secondBeg: "2025-03-02"},
		{start: "2025-03-01", end: "2025-03-04", firstEnd: "2025-03-02", secondBeg: "2025-03-03"},
		{start: "2024-02-27", end: "2024-03-02", firstEnd: "2024-02-29", secondBeg: "2024-03-01"},
	}

	for _, tc := range cases {
		window, err := ParseWindow(tc.start, tc.end)
		if err != nil {
			t.Fatalf("parse window: %v", err)
		}
		first, second, ok := window.Split()
		if !ok {
			t.Fatalf("expected %s to split", window)
		}
		if first.StartDate() != tc.start || first.EndDate() != tc.firstEnd {
			t.Fatalf("unexpected first half for %s: %s", window, first)
		}
		if second.StartDate() != tc.secondBeg || second.EndDate() != tc.end {
			t.Fatalf("unexpected second half for %s: %s", window, second)
		}
		if first.Days()+second.Days() != window.Days() {
			t.Fatalf("halves of %s do not cover it exactly: %d + %d", window, first.Days(), second.Days())
		}
		if !second.Start.Equal(first.End.AddDate(0, 0, 1)) {
			t.Fatalf("halves of %s overlap or leave a gap", window)
		}
	}
}

func TestWindow_SplitSingleDay(t *testing.T) {
	t.Parallel()

	window, err := ParseWindow("2025-05-05", "2025-05-05")
	if err != nil {
		t.Fatalf("parse window: %v", err)
	}
	if _, _, ok := window.Split(); ok {
		t.Fatalf("expected single-day window not to split")
	}
	if window.Days() != 1 {
		t.Fatalf("unexpected days: %d", window.Days())
	}
}

func TestParseWindow_RejectsInvalid(t *testing.T) {
	t.Parallel()

	if _, err := ParseWindow("2025-05-06", "2025-05-05"); err == nil {
		t.Fatalf("expected inverted window to fail")
	}
	if _, err := ParseWindow("05/05/2025", "2025-05-05"); err == nil {
		t.Fatalf("expected malformed start date to fail")
	}
}

func TestCalendarYear(t *testing.T) {
	t.Parallel()

	window := CalendarYear(2024)
	if window.String() != "2024-01-01..2024-12-31" {
		t.Fatalf("unexpected calendar year window: %s", window)
	}
	if window.Days() != 366 {
		t.Fatalf("expected leap year to cover 366 days, got %d", window.Days())
	}
}

func TestNewWindow_TruncatesToDate(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.June, 1, 18, 30, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 3, 1, 0, 0, 0, time.UTC)
	window, err := NewWindow(start, end)
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	if window.String() != "2025-06-01..2025-06-03" || window.Days() != 3 {
		t.Fatalf("unexpected window: %s days=%d", window, window.Days())
	}
}

func TestDatePart(t *testing.T) {
	t.Parallel()

	if got := DatePart("2025-09-12T00:00:00Z"); got != "2025-09-12" {
		t.Fatalf("unexpected date part: %q", got)
	}
	if got := DatePart("2025-09-12"); got != "2025-09-12" {
		t.Fatalf("unexpected date part without time: %q", got)
	}
	if got := DatePart("  "); got != "" {
		t.Fatalf("expected blank input to stay blank, got %q", got)
	}
}
