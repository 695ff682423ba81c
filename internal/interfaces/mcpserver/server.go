package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/riskibarqy/volleyball-stats/internal/platform/logging"
	"github.com/riskibarqy/volleyball-stats/internal/usecase"
)

const (
	ServerName       = "mcp-voleyball"
	ToolExecuteQuery = "execute_query"
)

// QueryInput is the argument object of the execute_query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"a single SELECT statement to run against the volleyball store"`
}

// QueryOutput carries the rows of one query, each row in column order.
type QueryOutput struct {
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`
	RowCount int      `json:"row_count"`
}

type handler struct {
	queries *usecase.QueryService
	logger  *logging.Logger
}

// NewServer exposes the read-only query service as an MCP tool server.
func NewServer(queries *usecase.QueryService, version string, logger *logging.Logger) *mcp.Server {
	if logger == nil {
		logger = logging.Default()
	}
	h := &handler{queries: queries, logger: logger}

	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name: ToolExecuteQuery,
		Description: "Run a SELECT query against the volleyball SQLite store. " +
			"Tables: tournaments, teams, pools, rounds, matches, sets.",
	}, h.executeQuery)
	return server
}

func (h *handler) executeQuery(ctx context.Context, _ *mcp.CallToolRequest, in QueryInput) (*mcp.CallToolResult, QueryOutput, error) {
	result, err := h.queries.Run(ctx, in.Query)
	if err != nil {
		h.logger.WarnContext(ctx, "execute_query rejected", "error", err)
		return nil, QueryOutput{}, err
	}

	out := QueryOutput{
		Columns:  result.Columns,
		Rows:     result.Rows,
		RowCount: result.Len(),
	}
	if out.Columns == nil {
		out.Columns = []string{}
	}
	if out.Rows == nil {
		out.Rows = [][]any{}
	}
	h.logger.DebugContext(ctx, "execute_query served", "rows", out.RowCount)
	return nil, out, nil
}
