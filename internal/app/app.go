package app

import (
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/riskibarqy/volleyball-stats/external/volleyballworld"
	"github.com/riskibarqy/volleyball-stats/internal/config"
	"github.com/riskibarqy/volleyball-stats/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/volleyball-stats/internal/interfaces/httpapi"
	"github.com/riskibarqy/volleyball-stats/internal/interfaces/mcpserver"
	"github.com/riskibarqy/volleyball-stats/internal/platform/logging"
	"github.com/riskibarqy/volleyball-stats/internal/usecase"
)

// Runtime holds the services shared by the CLI commands and the query server.
type Runtime struct {
	Config  config.Config
	Logger  *logging.Logger
	Store   *sqlite.Store
	Fetcher *usecase.RangeFetcher
	Loader  *usecase.LoadService
	Query   *usecase.QueryService
}

func NewRuntime(cfg config.Config, logger *logging.Logger) *Runtime {
	if logger == nil {
		logger = logging.Default()
	}

	client := volleyballworld.NewClient(volleyballworld.ClientConfig{
		TournamentBaseURL:    cfg.TournamentBaseURL,
		CompetitionsBaseURL:  cfg.CompetitionsBaseURL,
		UserAgent:            cfg.UserAgent,
		LookupTimeout:        cfg.LookupTimeout,
		RangeTimeout:         cfg.RangeTimeout,
		CompetitionsCacheTTL: cfg.CompetitionsCacheTTL,
		Logger:               logger,
	})
	fetcher := usecase.NewRangeFetcher(client, usecase.RangeFetcherConfig{
		DefaultYear: cfg.DefaultYear,
		ProbeYears:  cfg.ProbeYears,
		SplitDepth:  cfg.SplitDepth,
	}, logger)

	store := sqlite.NewStore(cfg.DBPath, logger)
	loader := usecase.NewLoadService(
		store,
		sqlite.NewTournamentRepository(store),
		sqlite.NewTeamRepository(store),
		sqlite.NewMatchRepository(store),
		logger,
	)
	query := usecase.NewQueryService(sqlite.NewQueryRepository(store))

	return &Runtime{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Fetcher: fetcher,
		Loader:  loader,
		Query:   query,
	}
}

// NewHTTPServer exposes the read-only query service over HTTP.
func NewHTTPServer(rt *Runtime) (*http.Server, error) {
	if rt == nil {
		return nil, fmt.Errorf("runtime is required")
	}

	handler := httpapi.NewHandler(rt.Query, rt.Logger)
	router := httpapi.NewRouter(handler, rt.Logger, rt.Config.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         rt.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  rt.Config.ReadTimeout,
		WriteTimeout: rt.Config.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// NewMCPServer exposes the read-only query service as MCP tools.
func NewMCPServer(rt *Runtime, version string) *mcp.Server {
	return mcpserver.NewServer(rt.Query, version, rt.Logger)
}
