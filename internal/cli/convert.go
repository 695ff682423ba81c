package cli

import (
	"github.com/spf13/cobra"

	"github.com/riskibarqy/volleyball-stats/internal/infrastructure/artifact"
	"github.com/riskibarqy/volleyball-stats/internal/usecase"
)

func convertCmd(s *session) *cobra.Command {
	var in string
	var keep bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Load a JSON artifact into the store",
		Long: `Load a JSON artifact written by fetch into the SQLite store. The store is
recreated unless --keep is given, in which case rows are upserted by key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			bundle, err := artifact.ReadBundle(in)
			if err != nil {
				return err
			}

			summary, err := s.runtime.Loader.Convert(ctx, bundle, usecase.ConvertOptions{Destructive: !keep})
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), s.runtime.Store.Path(), summary)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", artifact.DefaultPath, "artifact path")
	cmd.Flags().BoolVar(&keep, "keep", false, "upsert into the existing store instead of recreating it")
	return cmd
}
