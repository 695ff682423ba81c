package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/volleyball-stats/internal/domain/rowset"
)

func queryCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a read-only SELECT against the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := s.runtime.Query.Run(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), result)
		},
	}
}

func writeTable(w io.Writer, result rowset.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := color.New(color.Bold, color.FgCyan)

	if len(result.Columns) > 0 {
		cells := make([]string, len(result.Columns))
		for i, column := range result.Columns {
			cells[i] = header.Sprint(column)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = formatValue(value)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	noun := "rows"
	if result.Len() == 1 {
		noun = "row"
	}
	_, err := fmt.Fprintf(w, "(%d %s)\n", result.Len(), noun)
	return err
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
