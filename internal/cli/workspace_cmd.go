package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/agencyos/internal/cli/formatter"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/spf13/cobra"
)

// recentLedgerRows is how many ledger entries "workspace show" prints.
const recentLedgerRows = 5

func newWorkspaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces and credits",
	}

	cmd.AddCommand(
		newWorkspaceCreateCmd(app),
		newWorkspaceListCmd(app),
		newWorkspaceShowCmd(app),
		newWorkspaceCreditCmd(app),
		newWorkspaceDeductCmd(app),
		newWorkspaceLedgerCmd(app),
		newWorkspaceStatusCmd(app, "pause", domain.WorkspacePaused),
		newWorkspaceStatusCmd(app, "resume", domain.WorkspaceActive),
		newWorkspacePricesCmd(),
	)

	return cmd
}

func newWorkspaceCreateCmd(app *App) *cobra.Command {
	var name, brand, website, tone string
	var channels []string
	var credits int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.Workspace{
				Name:      name,
				BrandName: domain.Coalesce(brand, name),
				Website:   website,
				Tone:      tone,
				Channels:  channels,
				Credits:   credits,
			}
			if err := app.Workspaces.Create(cmd.Context(), w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created workspace %s (%s) with %d credits\n", w.Name, w.ID, w.Credits)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Workspace name")
	cmd.Flags().StringVar(&brand, "brand", "", "Brand name (defaults to the workspace name)")
	cmd.Flags().StringVar(&website, "website", "", "Brand website")
	cmd.Flags().StringVar(&tone, "tone", "", "Brand voice")
	cmd.Flags().StringSliceVar(&channels, "channel", nil, "Marketing channel (repeatable)")
	cmd.Flags().IntVar(&credits, "credits", 0, "Opening credit balance")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newWorkspaceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			workspaces, err := app.Workspaces.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(workspaces) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workspaces found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkspaceList(workspaces))
			return nil
		},
	}
}

func newWorkspaceShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a workspace and its recent credit activity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveWorkspaceID(ctx, app, firstArg(args))
			if err != nil {
				return err
			}
			w, err := app.Workspaces.GetByID(ctx, id)
			if err != nil {
				return err
			}
			entries, err := app.Workspaces.Ledger(ctx, id)
			if err != nil {
				return err
			}
			if len(entries) > recentLedgerRows {
				entries = entries[:recentLedgerRows]
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkspace(w, entries))
			return nil
		},
	}
}

func newWorkspaceCreditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "credit ID AMOUNT",
		Short: "Top up a workspace's credits",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			id, err := resolveWorkspaceID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Workspaces.Credit(ctx, id, amount); err != nil {
				return err
			}
			return printBalance(cmd, app, id, fmt.Sprintf("Added %d credits.", amount))
		},
	}
}

func newWorkspaceDeductCmd(app *App) *cobra.Command {
	action := newEnumValue(string(domain.ActionNewRequest), enumStrings(
		domain.ActionNewRequest, domain.ActionRevision, domain.ActionRushDelivery,
		domain.ActionExtraDeliverable, domain.ActionStrategyCall,
	)...)
	var cost int

	cmd := &cobra.Command{
		Use:   "deduct ID",
		Short: "Charge a workspace for an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveWorkspaceID(ctx, app, args[0])
			if err != nil {
				return err
			}
			act := domain.CreditAction(action.String())
			if !cmd.Flags().Changed("cost") {
				cost, _ = domain.CostOf(act)
			}
			ok, err := app.Workspaces.Deduct(ctx, id, act, cost)
			if err != nil {
				return err
			}
			if !ok {
				w, err := app.Workspaces.GetByID(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Insufficient credits: balance %d, cost %d\n", w.Credits, cost)
				return domain.ErrInsufficientCredits
			}
			return printBalance(cmd, app, id, fmt.Sprintf("Charged %d credits for %s.", cost, act))
		},
	}

	cmd.Flags().Var(action, "action", "Credit action (NEW_REQUEST|REVISION|RUSH_DELIVERY|EXTRA_DELIVERABLE|STRATEGY_CALL)")
	cmd.Flags().IntVar(&cost, "cost", 0, "Override the action's default cost")

	return cmd
}

func newWorkspaceLedgerCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ledger [ID]",
		Short: "Show a workspace's credit history, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveWorkspaceID(ctx, app, firstArg(args))
			if err != nil {
				return err
			}
			w, err := app.Workspaces.GetByID(ctx, id)
			if err != nil {
				return err
			}
			entries, err := app.Workspaces.Ledger(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLedger(w, entries))
			return nil
		},
	}
}

func newWorkspaceStatusCmd(app *App, verb string, status domain.WorkspaceStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " ID",
		Short: fmt.Sprintf("Set a workspace %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveWorkspaceID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Workspaces.SetStatus(ctx, id, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace %s is now %s\n", id, status)
			return nil
		},
	}
}

func newWorkspacePricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Show the credit cost of each action",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPriceList())
			return nil
		},
	}
}

func printBalance(cmd *cobra.Command, app *App, id, msg string) error {
	w, err := app.Workspaces.GetByID(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Balance: %d\n", msg, w.Credits)
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
