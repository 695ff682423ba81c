package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/volleyball-stats/internal/domain/feed"
	"github.com/riskibarqy/volleyball-stats/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultProbeYears = 5
	defaultSplitDepth = 1
)

type RangeFetcherConfig struct {
	// DefaultYear is the newest year searched and the calendar-year fallback.
	// Zero means the current UTC year.
	DefaultYear int
	ProbeYears  int
	// SplitDepth bounds how many times a failing window is halved.
	SplitDepth int
}

// RangeFetcher resolves a tournament's date window and downloads its matches,
// narrowing the window when a request fails.
type RangeFetcher struct {
	source feed.Source
	cfg    RangeFetcherConfig
	logger *logging.Logger
}

func NewRangeFetcher(source feed.Source, cfg RangeFetcherConfig, logger *logging.Logger) *RangeFetcher {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DefaultYear <= 0 {
		cfg.DefaultYear = time.Now().UTC().Year()
	}
	if cfg.ProbeYears <= 0 {
		cfg.ProbeYears = defaultProbeYears
	}
	if cfg.SplitDepth <= 0 {
		cfg.SplitDepth = defaultSplitDepth
	}

	return &RangeFetcher{source: source, cfg: cfg, logger: logger}
}

// WindowAttempt records one range request.
type WindowAttempt struct {
	Window  feed.Window
	Depth   int
	Err     error
	Matches int
	Teams   int
}

func (a WindowAttempt) Failed() bool {
	return a.Err != nil
}

// FetchReport lists every range request made for one tournament, in order.
type FetchReport struct {
	Attempts []WindowAttempt
}

// FailedWindows returns the windows that failed and were not split further.
func (r FetchReport) FailedWindows() []feed.Window {
	out := make([]feed.Window, 0)
	for i, attempt := range r.Attempts {
		if !attempt.Failed() {
			continue
		}
		// a split window is directly followed by its first half
		if i+1 < len(r.Attempts) && r.Attempts[i+1].Depth > attempt.Depth {
			continue
		}
		out = append(out, attempt.Window)
	}
	return out
}

func (r FetchReport) succeeded() int {
	count := 0
	for _, attempt := range r.Attempts {
		if !attempt.Failed() {
			count++
		}
	}
	return count
}

// Partial reports whether some data was recovered while part of the window was
// lost.
func (r FetchReport) Partial() bool {
	return r.succeeded() > 0 && len(r.FailedWindows()) > 0
}

type FetchResult struct {
	TournamentNo int64
	Window       feed.Window
	// Competition is nil when the window fell back to a calendar year.
	Competition *feed.Competition
	Bundle      feed.Bundle
	Report      FetchReport
}

// FetchTournament downloads every match, team and tournament record of
// tournamentNo. A nil year searches recent years for the tournament's
// competition.
func (f *RangeFetcher) FetchTournament(ctx context.Context, tournamentNo int64, year *int) (FetchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RangeFetcher.FetchTournament")
	defer span.End()
	span.SetAttributes(attribute.Int64("tournament.no", tournamentNo))

	if tournamentNo <= 0 {
		return FetchResult{}, fmt.Errorf("%w: tournament number must be greater than zero", ErrInvalidInput)
	}
	if year != nil && *year <= 0 {
		return FetchResult{}, fmt.Errorf("%w: year must be greater than zero", ErrInvalidInput)
	}

	result := FetchResult{TournamentNo: tournamentNo}
	window, competition, err := f.ResolveWindow(ctx, tournamentNo, year)
	result.Competition = competition
	if err != nil {
		return result, err
	}
	result.Window = window

	merger := newBundleMerger(tournamentNo)
	if err := f.fetchWindow(ctx, window, tournamentNo, 0, merger, &result.Report); err != nil {
		return result, err
	}
	result.Bundle = merger.bundle()

	if result.Report.succeeded() == 0 {
		f.logger.WarnContext(ctx, "no range request succeeded",
			"tournament_no", tournamentNo,
			"window", window.String(),
			"attempts", len(result.Report.Attempts),
		)
		return result, fmt.Errorf("%w: tournament %d window %s", ErrNoData, tournamentNo, window)
	}
	if result.Report.Partial() {
		failed := make([]string, 0)
		for _, w := range result.Report.FailedWindows() {
			failed = append(failed, w.String())
		}
		f.logger.WarnContext(ctx, "partial recovery: some date ranges could not be fetched",
			"tournament_no", tournamentNo,
			"failed_windows", strings.Join(failed, ","),
			"matches", len(result.Bundle.Matches),
			"teams", len(result.Bundle.Teams),
		)
	}

	f.logger.InfoContext(ctx, "tournament fetched",
		"tournament_no", tournamentNo,
		"window", window.String(),
		"matches", len(result.Bundle.Matches),
		"teams", len(result.Bundle.Teams),
		"tournaments", len(result.Bundle.Tournaments),
	)
	return result, nil
}

// ResolveWindow finds the date window of tournamentNo from its competition,
// falling back to the calendar year of year or the configured default year.
func (f *RangeFetcher) ResolveWindow(ctx context.Context, tournamentNo int64, year *int) (feed.Window, *feed.Competition, error) {
	years := make([]int, 0, f.cfg.ProbeYears)
	fallbackYear := f.cfg.DefaultYear
	if year != nil {
		years = append(years, *year)
		fallbackYear = *year
	} else {
		for i := 0; i < f.cfg.ProbeYears; i++ {
			years = append(years, f.cfg.DefaultYear-i)
		}
	}

	for _, candidate := range years {
		competition, found, err := f.lookupCompetition(ctx, tournamentNo, candidate)
		if err != nil {
			return feed.Window{}, nil, err
		}
		if !found {
			continue
		}

		window, err := competitionWindow(competition)
		if err != nil {
			f.logger.WarnContext(ctx, "competition found without usable dates",
				"tournament_no", tournamentNo,
				"year", candidate,
				"competition", competition.CompetitionFullName.OrEmpty(),
				"error", err,
			)
			return feed.Window{}, &competition, fmt.Errorf("%w: tournament %d: %v", ErrMissingCompetitionDates, tournamentNo, err)
		}

		f.logger.InfoContext(ctx, "competition found",
			"tournament_no", tournamentNo,
			"year", candidate,
			"competition", competition.CompetitionFullName.OrEmpty(),
			"window", window.String(),
		)
		return window, &competition, nil
	}

	window := feed.CalendarYear(fallbackYear)
	f.logger.WarnContext(ctx, "competition not found, using full calendar year",
		"tournament_no", tournamentNo,
		"window", window.String(),
	)
	return window, nil, nil
}

func (f *RangeFetcher) lookupCompetition(ctx context.Context, tournamentNo int64, year int) (feed.Competition, bool, error) {
	competitions, err := f.source.FetchCompetitions(ctx, year)
	if err != nil {
		if ctx.Err() != nil {
			return feed.Competition{}, false, ctx.Err()
		}
		f.logger.WarnContext(ctx, "competition lookup failed, treating as not found",
			"tournament_no", tournamentNo,
			"year", year,
			"error", err,
		)
		return feed.Competition{}, false, nil
	}

	for _, competition := range competitions {
		if competition.Covers(tournamentNo) {
			return competition, true, nil
		}
	}
	return feed.Competition{}, false, nil
}

func competitionWindow(competition feed.Competition) (feed.Window, error) {
	start := feed.DatePart(competition.StartDate.OrEmpty())
	end := feed.DatePart(competition.EndDate.OrEmpty())
	if start == "" || end == "" {
		return feed.Window{}, errors.New("start or end date is empty")
	}
	return feed.ParseWindow(start, end)
}

// fetchWindow requests window once. On a transport failure it halves the
// window and fetches each half in order while depth allows; a half that still
// fails contributes nothing. Any other error aborts the fetch.
func (f *RangeFetcher) fetchWindow(
	ctx context.Context,
	window feed.Window,
	tournamentNo int64,
	depth int,
	merger *bundleMerger,
	report *FetchReport,
) error {
	bundle, err := f.source.FetchRange(ctx, window, tournamentNo)
	attempt := WindowAttempt{Window: window, Depth: depth, Err: err}
	if err == nil {
		attempt.Matches = len(bundle.Matches)
		attempt.Teams = len(bundle.Teams)
		report.Attempts = append(report.Attempts, attempt)
		merger.add(bundle)
		return nil
	}
	report.Attempts = append(report.Attempts, attempt)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !feed.IsTransportError(err) {
		return fmt.Errorf("fetch range %s: %w", window, err)
	}

	if depth >= f.cfg.SplitDepth {
		f.logger.WarnContext(ctx, "range request failed, skipping window",
			"tournament_no", tournamentNo,
			"window", window.String(),
			"depth", depth,
			"error", err,
		)
		return nil
	}

	first, second, ok := window.Split()
	if !ok {
		f.logger.WarnContext(ctx, "range request failed on a single day, skipping window",
			"tournament_no", tournamentNo,
			"window", window.String(),
			"error", err,
		)
		return nil
	}

	f.logger.WarnContext(ctx, "range request failed, splitting window",
		"tournament_no", tournamentNo,
		"window", window.String(),
		"days", window.Days(),
		"first", first.String(),
		"second", second.String(),
		"error", err,
	)
	if err := f.fetchWindow(ctx, first, tournamentNo, depth+1, merger, report); err != nil {
		return err
	}
	return f.fetchWindow(ctx, second, tournamentNo, depth+1, merger, report)
}

// bundleMerger deduplicates records across partial responses. A later record
// replaces an earlier one with the same key but keeps its position.
type bundleMerger struct {
	tournamentNo int64

	matches      []feed.Match
	matchIndex   map[int64]int
	teams        []feed.Team
	teamIndex    map[int64]int
	tournaments  []feed.Tournament
	tournamentAt int
}

func newBundleMerger(tournamentNo int64) *bundleMerger {
	return &bundleMerger{
		tournamentNo: tournamentNo,
		matches:      make([]feed.Match, 0),
		matchIndex:   make(map[int64]int),
		teams:        make([]feed.Team, 0),
		teamIndex:    make(map[int64]int),
		tournaments:  make([]feed.Tournament, 0, 1),
		tournamentAt: -1,
	}
}

func (m *bundleMerger) add(bundle feed.Bundle) {
	for _, item := range bundle.Matches {
		key := item.No.OrZero()
		if key == 0 {
			continue
		}
		if idx, ok := m.matchIndex[key]; ok {
			m.matches[idx] = item
			continue
		}
		m.matchIndex[key] = len(m.matches)
		m.matches = append(m.matches, item)
	}

	for _, item := range bundle.Teams {
		key := item.No.OrZero()
		if key == 0 {
			continue
		}
		if idx, ok := m.teamIndex[key]; ok {
			m.teams[idx] = item
			continue
		}
		m.teamIndex[key] = len(m.teams)
		m.teams = append(m.teams, item)
	}

	for _, item := range bundle.Tournaments {
		if item.No.OrZero() != m.tournamentNo {
			continue
		}
		if m.tournamentAt >= 0 {
			m.tournaments[m.tournamentAt] = item
			continue
		}
		m.tournamentAt = len(m.tournaments)
		m.tournaments = append(m.tournaments, item)
	}
}

func (m *bundleMerger) bundle() feed.Bundle {
	return feed.Bundle{
		Matches:     m.matches,
		Teams:       m.teams,
		Tournaments: m.tournaments,
	}
}
