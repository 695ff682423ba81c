package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/volleyball-stats/internal/app"
	"github.com/riskibarqy/volleyball-stats/internal/interfaces/mcpserver"
)

func mcpCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve read-only queries to MCP clients over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout. The server exposes one
tool, execute_query, that runs a single SELECT statement against the store.
Logs are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			server := app.NewMCPServer(s.runtime, cmd.Root().Version)

			s.logger.InfoContext(ctx, "mcp server starting", "db_path", s.runtime.Store.Path())
			transport := &mcp.IOTransport{
				Reader: io.NopCloser(cmd.InOrStdin()),
				Writer: nopWriteCloser{cmd.OutOrStdout()},
			}
			if err := server.Run(ctx, transport); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			s.logger.InfoContext(ctx, "mcp server stopped")
			return nil
		},
	}
	cmd.AddCommand(mcpConfigCmd(s))
	return cmd
}

type mcpClientConfig struct {
	MCPServers map[string]mcpServerEntry `json:"mcpServers"`
}

type mcpServerEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

func mcpConfigCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the MCP client configuration for this store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			binary, err := os.Executable()
			if err != nil {
				binary = "volleydb"
			}
			dbPath := s.runtime.Store.Path()
			if abs, err := filepath.Abs(dbPath); err == nil {
				dbPath = abs
			}

			out, err := sonic.ConfigStd.MarshalIndent(mcpClientConfig{
				MCPServers: map[string]mcpServerEntry{
					mcpserver.ServerName: {Command: binary, Args: []string{"--db", dbPath, "mcp"}},
				},
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("encode mcp config: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
