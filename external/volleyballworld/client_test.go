package volleyballworld

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/volleyball-stats/internal/domain/feed"
	"github.com/riskibarqy/volleyball-stats/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, rangeTimeout time.Duration) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient:          server.Client(),
		TournamentBaseURL:   server.URL + "/volley-tournament",
		CompetitionsBaseURL: server.URL + "/competitions/",
		LookupTimeout:       time.Second,
		RangeTimeout:        rangeTimeout,
		Logger:              logging.NewNop(),
	})
}

func TestClient_FetchCompetitions(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/competitions/2025/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("unexpected user agent: %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(`{"competitions":[{"menTournaments":"1520","womenTournaments":null,"startDate":"2025-09-12T00:00:00","endDate":"2025-09-28T00:00:00","competitionFullName":"Men's World Championship"}]}`))
	}, time.Second)

	got, err := client.FetchCompetitions(context.Background(), 2025)
	if err != nil {
		t.Fatalf("fetch competitions: %v", err)
	}
	if len(got) != 1 || !got[0].Covers(1520) {
		t.Fatalf("unexpected competitions: %+v", got)
	}
	if got[0].WomenTournaments.Valid {
		t.Fatalf("expected null women tournaments to be absent")
	}

	if _, err := client.FetchCompetitions(context.Background(), 2025); err != nil {
		t.Fatalf("fetch cached competitions: %v", err)
	}
	if n := requests.Load(); n != 1 {
		t.Fatalf("expected competitions of a year to be requested once, got %d", n)
	}
}

func TestClient_FetchCompetitions_FailureNotCached(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if requests.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"competitions":[]}`))
	}, time.Second)

	if _, err := client.FetchCompetitions(context.Background(), 2024); !feed.IsTransportError(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	got, err := client.FetchCompetitions(context.Background(), 2024)
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if len(got) != 0 || requests.Load() != 2 {
		t.Fatalf("unexpected retry result: %+v requests=%d", got, requests.Load())
	}
}

func TestClient_FetchRange(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volley-tournament/2025-09-12/2025-09-28/1520" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"matches": [{"matchNo": 500, "tournamentNo": 1520, "teamANo": 10, "teamBNo": 20, "sets": [{"no": 1, "pointsTeamA": 25, "pointsTeamB": 21}]}],
			"allTeams": [{"no": 10, "code": "BRA", "name": "Brazil"}, {"no": 20, "code": "POL", "name": "Poland"}],
			"allTournaments": [{"no": 1520, "name": "World Championship"}]
		}`))
	}, time.Second)

	window, err := feed.ParseWindow("2025-09-12", "2025-09-28")
	if err != nil {
		t.Fatalf("parse window: %v", err)
	}
	got, err := client.FetchRange(context.Background(), window, 1520)
	if err != nil {
		t.Fatalf("fetch range: %v", err)
	}
	if len(got.Matches) != 1 || len(got.Teams) != 2 || len(got.Tournaments) != 1 {
		t.Fatalf("unexpected bundle: %+v", got)
	}
	if got.Teams[1].Name.OrEmpty() != "Poland" {
		t.Fatalf("unexpected team: %+v", got.Teams[1])
	}
	if got.Matches[0].Sets[0].PointsTeamB.OrZero() != 21 {
		t.Fatalf("unexpected set: %+v", got.Matches[0].Sets[0])
	}
}

func TestClient_TransportFailures(t *testing.T) {
	t.Parallel()

	window := feed.CalendarYear(2025)
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "upstream unavailable", http.StatusBadGateway)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"matches": [`))
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, tc.handler, 100*time.Millisecond)
			_, err := client.FetchRange(context.Background(), window, 1520)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !feed.IsTransportError(err) || !errors.Is(err, ErrTransport) {
				t.Fatalf("expected transport error, got %v", err)
			}
		})
	}
}

func TestAbbreviateBody(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 400)
	got := abbreviateBody([]byte(long))
	if len(got) != 259 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected abbreviated body length=%d", len(got))
	}
	if abbreviateBody([]byte("  short  ")) != "short" {
		t.Fatalf("expected short body to be trimmed only")
	}
}
