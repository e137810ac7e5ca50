package cli

import (
	"fmt"

	"github.com/alexanderramin/agencyos/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demo workspace with projects, cards and tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Seed.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSeed(res.Workspace, res.Projects, res.Cards, res.Tickets))
			return nil
		},
	}
}
