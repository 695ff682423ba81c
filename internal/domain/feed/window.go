package feed

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by the range endpoint.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// Window is an inclusive range of calendar dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow truncates both bounds to UTC midnight and rejects inverted ranges.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: truncateDay(start), End: truncateDay(end)}
	if w.End.Before(w.Start) {
		return Window{}, fmt.Errorf("window end %s is before start %s", w.EndDate(), w.StartDate())
	}
	return w, nil
}

// ParseWindow builds a window from two YYYY-MM-DD dates.
func ParseWindow(start, end string) (Window, error) {
	startAt, err := time.Parse(DateLayout, strings.TrimSpace(start))
	if err != nil {
		return Window{}, fmt.Errorf("parse start date %q: %w", start, err)
	}
	endAt, err := time.Parse(DateLayout, strings.TrimSpace(end))
	if err != nil {
		return Window{}, fmt.Errorf("parse end date %q: %w", end, err)
	}
	return NewWindow(startAt, endAt)
}

// CalendarYear covers January 1 through December 31 of year.
func CalendarYear(year int) Window {
	return Window{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Days is the number of calendar days covered, bounds included.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start)/day) + 1
}

// Split halves the window at mid = start + floor((end-start)/2) into
// [start, mid] and [mid+1, end]. A single-day window cannot be split.
func (w Window) Split() (Window, Window, bool) {
	span := w.Days() - 1
	if span < 1 {
		return Window{}, Window{}, false
	}
	mid := w.Start.AddDate(0, 0, span/2)
	return Window{Start: w.Start, End: mid}, Window{Start: mid.AddDate(0, 0, 1), End: w.End}, true
}

func (w Window) StartDate() string {
	return w.Start.Format(DateLayout)
}

func (w Window) EndDate() string {
	return w.End.Format(DateLayout)
}

func (w Window) String() string {
	return w.StartDate() + ".." + w.EndDate()
}

// DatePart returns the YYYY-MM-DD part of an ISO-8601 timestamp, cutting at
// the first 'T'. It returns "" for blank input.
func DatePart(raw string) string {
	raw = strings.TrimSpace(raw)
	if idx := strings.IndexByte(raw, 'T'); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
