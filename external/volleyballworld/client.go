package volleyballworld

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/volleyball-stats/internal/domain/feed"
	"github.com/riskibarqy/volleyball-stats/internal/platform/cache"
	"github.com/riskibarqy/volleyball-stats/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTournamentBaseURL   = "https://en.volleyballworld.com/api/v1/volley-tournament"
	DefaultCompetitionsBaseURL = "https://en.volleyballworld.com/api/v1/globalschedule/competitions"
	DefaultUserAgent           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	defaultLookupTimeout        = 30 * time.Second
	defaultRangeTimeout         = 60 * time.Second
	defaultCompetitionsCacheTTL = 10 * time.Minute
	maxResponseBytes            = 64 << 20
)

// ErrTransport marks every failure to obtain a decoded payload: network
// errors, timeouts, non-2xx statuses and malformed JSON.
var ErrTransport = feed.ErrTransport

var jsonAPI = sonic.ConfigStd

type ClientConfig struct {
	HTTPClient          *http.Client
	TournamentBaseURL   string
	CompetitionsBaseURL string
	UserAgent           string
	LookupTimeout       time.Duration
	RangeTimeout        time.Duration
	// CompetitionsCacheTTL bounds how long a year's competition list is
	// reused. Zero means the default.
	CompetitionsCacheTTL time.Duration
	Logger               *logging.Logger
}

// Client reads the public VolleyballWorld schedule API.
type Client struct {
	httpClient          *http.Client
	tournamentBaseURL   string
	competitionsBaseURL string
	userAgent           string
	lookupTimeout       time.Duration
	rangeTimeout        time.Duration
	competitions        *cache.Store[[]feed.Competition]
	logger              *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	tournamentBaseURL := strings.TrimRight(strings.TrimSpace(cfg.TournamentBaseURL), "/")
	if tournamentBaseURL == "" {
		tournamentBaseURL = DefaultTournamentBaseURL
	}
	competitionsBaseURL := strings.TrimRight(strings.TrimSpace(cfg.CompetitionsBaseURL), "/")
	if competitionsBaseURL == "" {
		competitionsBaseURL = DefaultCompetitionsBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	lookupTimeout := cfg.LookupTimeout
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	rangeTimeout := cfg.RangeTimeout
	if rangeTimeout <= 0 {
		rangeTimeout = defaultRangeTimeout
	}
	cacheTTL := cfg.CompetitionsCacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCompetitionsCacheTTL
	}

	return &Client{
		httpClient:          httpClient,
		tournamentBaseURL:   tournamentBaseURL,
		competitionsBaseURL: competitionsBaseURL,
		userAgent:           userAgent,
		lookupTimeout:       lookupTimeout,
		rangeTimeout:        rangeTimeout,
		competitions:        cache.NewStore[[]feed.Competition](cacheTTL),
		logger:              logger,
	}
}

// FetchCompetitions lists the competitions scheduled in year. Successful
// lookups are cached per year.
func (c *Client) FetchCompetitions(ctx context.Context, year int) ([]feed.Competition, error) {
	if year <= 0 {
		return nil, fmt.Errorf("year must be greater than zero")
	}

	key := strconv.Itoa(year)
	return c.competitions.GetOrLoad(ctx, key, func(ctx context.Context) ([]feed.Competition, error) {
		fullURL := c.competitionsBaseURL + "/" + key + "/"
		var out feed.CompetitionList
		if err := c.getJSON(ctx, fullURL, c.lookupTimeout, &out); err != nil {
			return nil, fmt.Errorf("fetch competitions year=%d: %w", year, err)
		}
		return out.Competitions, nil
	})
}

// FetchRange downloads matches, teams and tournaments of tournamentNo played
// inside window.
func (c *Client) FetchRange(ctx context.Context, window feed.Window, tournamentNo int64) (feed.Bundle, error) {
	if tournamentNo <= 0 {
		return feed.Bundle{}, fmt.Errorf("tournament number must be greater than zero")
	}

	fullURL := fmt.Sprintf("%s/%s/%s/%d", c.tournamentBaseURL, window.StartDate(), window.EndDate(), tournamentNo)
	var out feed.Bundle
	if err := c.getJSON(ctx, fullURL, c.rangeTimeout, &out); err != nil {
		return feed.Bundle{}, fmt.Errorf("fetch range tournament=%d window=%s: %w", tournamentNo, window, err)
	}

	c.logger.DebugContext(ctx, "range fetched",
		"tournament_no", tournamentNo,
		"window", window.String(),
		"matches", len(out.Matches),
		"teams", len(out.Teams),
	)
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, fullURL string, timeout time.Duration, target any) error {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("user-agent", c.userAgent)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "volleyballworld request failed", "url", fullURL, "error", err)
		return fmt.Errorf("%w: send request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return fmt.Errorf("%w: read response body: %v", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "volleyballworld request rejected",
			"url", fullURL,
			"status", resp.StatusCode,
			"duration", time.Since(started),
		)
		return fmt.Errorf("%w: provider status=%d body=%s", ErrTransport, resp.StatusCode, abbreviateBody(buf.B))
	}

	if err := jsonAPI.Unmarshal(buf.B, target); err != nil {
		return fmt.Errorf("%w: decode provider payload: %v", ErrTransport, err)
	}
	return nil
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}
