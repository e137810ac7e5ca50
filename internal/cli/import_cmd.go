package cli

import (
	"fmt"

	"github.com/alexanderramin/agencyos/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import external data",
	}
	cmd.AddCommand(newImportMetricsCmd(app))
	return cmd
}

func newImportMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics CARD FILE",
		Short: "Replace a card's metrics with the totals of an ads-platform CSV export",
		Long: `Read a CSV export and store its totals on a work card.

Spend, impressions and clicks columns are detected by header name
(e.g. "Amount spent (USD)", "Impr", "Link clicks"). Unreadable cells
count as zero. The card's previous metrics are replaced.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cardID, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Metrics.ImportFile(ctx, cardID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMetrics(res.Card.Title, res.Metrics))
			return nil
		},
	}
}
