package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/volleyball-stats/internal/app"
	"github.com/riskibarqy/volleyball-stats/internal/config"
	"github.com/riskibarqy/volleyball-stats/internal/platform/id"
	"github.com/riskibarqy/volleyball-stats/internal/platform/logging"
)

// Options controls where a command reads its configuration and writes output.
type Options struct {
	LoadConfig func() (config.Config, error)
	IDs        id.Generator
	Out        io.Writer
	Err        io.Writer
}

type session struct {
	opts    Options
	dbPath  string
	verbose bool

	cfg     config.Config
	logger  *logging.Logger
	runtime *app.Runtime
}

// NewRootCmd builds the volleydb command tree.
func NewRootCmd(version string, opts Options) *cobra.Command {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.IDs == nil {
		opts.IDs = id.NewUUIDGenerator()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	s := &session{opts: opts}
	rootCmd := &cobra.Command{
		Use:     "volleydb",
		Short:   "Download VolleyballWorld results into a local SQLite store",
		Version: version,
		Long: `volleydb fetches every match of a VolleyballWorld tournament, loads the
matches, teams, pools, rounds and sets into a SQLite file and answers
read-only SQL queries against it.

Examples:
  volleydb ingest --tournament 1520 --year 2025
  volleydb fetch --tournament 1520 --out matches.json
  volleydb convert --in matches.json --keep
  volleydb query "SELECT name, code FROM teams ORDER BY name"
  volleydb serve
  volleydb mcp`,
		SilenceUsage:      true,
		PersistentPreRunE: s.setup,
	}
	rootCmd.SetOut(opts.Out)
	rootCmd.SetErr(opts.Err)

	rootCmd.PersistentFlags().StringVar(&s.dbPath, "db", "", "SQLite store path (default from DB_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(fetchCmd(s))
	rootCmd.AddCommand(convertCmd(s))
	rootCmd.AddCommand(ingestCmd(s))
	rootCmd.AddCommand(queryCmd(s))
	rootCmd.AddCommand(serveCmd(s))
	rootCmd.AddCommand(migrateCmd(s))
	rootCmd.AddCommand(mcpCmd(s))

	return rootCmd
}

func (s *session) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := s.opts.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if path := strings.TrimSpace(s.dbPath); path != "" {
		cfg.DBPath = path
	}

	level := cfg.LogLevel
	if s.verbose {
		level = logging.LevelDebug
	}

	var logger *logging.Logger
	if cmd.Name() == "serve" {
		logger = logging.NewJSON(level)
	} else {
		logger = logging.NewConsole(level, s.opts.Err)
	}

	runID, err := s.opts.IDs.NewID()
	if err != nil {
		return err
	}
	logger = logger.With("run_id", runID, "command", cmd.Name())

	s.cfg = cfg
	s.logger = logger
	s.runtime = app.NewRuntime(cfg, logger)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
