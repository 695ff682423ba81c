package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/volleyball-stats/internal/domain/feed"
	"github.com/riskibarqy/volleyball-stats/internal/infrastructure/artifact"
	"github.com/riskibarqy/volleyball-stats/internal/usecase"
)

type tournamentFlags struct {
	tournamentNo int64
	year         int
}

func (f *tournamentFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64VarP(&f.tournamentNo, "tournament", "t", 0, "tournament number, e.g. 1520")
	cmd.Flags().IntVar(&f.year, "year", 0, "season year (searches recent years when omitted)")
	_ = cmd.MarkFlagRequired("tournament")
}

func (f *tournamentFlags) yearArg(cmd *cobra.Command) *int {
	if !cmd.Flags().Changed("year") {
		return nil
	}
	year := f.year
	return &year
}

func fetchCmd(s *session) *cobra.Command {
	var flags tournamentFlags
	var out string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a tournament into a JSON artifact",
		Long: `Download every match, team and tournament record of one tournament and
save them as JSON. Date windows that fail are halved and retried; what
could not be recovered is reported as a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			bundle, err := s.fetch(ctx, flags.tournamentNo, flags.yearArg(cmd))
			if errors.Is(err, usecase.ErrNoData) {
				s.logger.WarnContext(ctx, "no matches recovered", "tournament_no", flags.tournamentNo, "error", err)
				bundle, err = emptyBundle(), nil
			}
			if err != nil {
				return err
			}
			if err := artifact.WriteBundle(out, bundle); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %d matches and %d teams to %s\n",
				color.New(color.FgGreen).Sprint("Saved"),
				len(bundle.Matches),
				len(bundle.Teams),
				out,
			)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", artifact.DefaultPath, "artifact path")
	return cmd
}

func ingestCmd(s *session) *cobra.Command {
	var flags tournamentFlags
	var keep bool
	var out string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Download a tournament and load it into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			bundle, err := s.fetch(ctx, flags.tournamentNo, flags.yearArg(cmd))
			if errors.Is(err, usecase.ErrNoData) {
				s.logger.WarnContext(ctx, "no matches recovered, store left unchanged",
					"tournament_no", flags.tournamentNo,
					"path", s.runtime.Store.Path(),
					"error", err,
				)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s was not modified\n",
					color.New(color.FgYellow).Sprint("Skipped"),
					s.runtime.Store.Path(),
				)
				return nil
			}
			if err != nil {
				return err
			}
			if out != "" {
				if err := artifact.WriteBundle(out, bundle); err != nil {
					return err
				}
			}

			summary, err := s.runtime.Loader.Convert(ctx, bundle, usecase.ConvertOptions{Destructive: !keep})
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), s.runtime.Store.Path(), summary)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&keep, "keep", false, "upsert into the existing store instead of recreating it")
	cmd.Flags().StringVarP(&out, "out", "o", "", "also save the downloaded JSON artifact here")
	return cmd
}

// fetch downloads one tournament. The returned error wraps usecase.ErrNoData
// when no date window could be recovered; callers decide whether that is fatal.
func (s *session) fetch(ctx context.Context, tournamentNo int64, year *int) (feed.Bundle, error) {
	result, err := s.runtime.Fetcher.FetchTournament(ctx, tournamentNo, year)
	if err != nil {
		return feed.Bundle{}, fmt.Errorf("fetch tournament %d: %w", tournamentNo, err)
	}

	if failed := result.Report.FailedWindows(); len(failed) > 0 {
		s.logger.WarnContext(ctx, "some date ranges were skipped",
			"tournament_no", tournamentNo,
			"skipped", len(failed),
			"attempts", len(result.Report.Attempts),
		)
	}
	return result.Bundle, nil
}

func emptyBundle() feed.Bundle {
	return feed.Bundle{
		Matches:     []feed.Match{},
		Teams:       []feed.Team{},
		Tournaments: []feed.Tournament{},
	}
}

func printSummary(w io.Writer, path string, summary usecase.LoadSummary) {
	fmt.Fprintf(w, "%s %s\n", color.New(color.FgGreen).Sprint("Loaded"), path)
	for _, kind := range usecase.LoadOrder {
		fmt.Fprintf(w, "  %-12s %d written, %d stored\n", kind, summary.Counts[kind], summary.Stored[kind])
	}
}
