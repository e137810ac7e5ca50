package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/agencyos/internal/cli/formatter"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/spf13/cobra"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage work cards",
	}

	cmd.AddCommand(
		newCardAddCmd(app),
		newCardRequestCmd(app),
		newCardListCmd(app),
		newCardShowCmd(app),
		newCardUpdateCmd(app),
		newCardDeliverableCmd(app),
	)

	return cmd
}

// cardFlags are shared by "card add" and "card request".
type cardFlags struct {
	workspace, project, category, kind, title string
	inputs, deliverables                      []string
	revisions                                 int
}

func (f *cardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.workspace, "workspace", "", "Workspace ID, prefix or name")
	cmd.Flags().StringVar(&f.project, "project", "", "Project ID, prefix or name")
	cmd.Flags().StringVar(&f.category, "category", "", "Service category (e.g. social, video)")
	cmd.Flags().StringVar(&f.kind, "type", "", "Card type (e.g. carousel, reel)")
	cmd.Flags().StringVar(&f.title, "title", "", "Card title")
	cmd.Flags().StringArrayVar(&f.inputs, "input", nil, "Brief input (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&f.deliverables, "deliverable", nil, "Expected deliverable name (repeatable)")
	cmd.Flags().IntVar(&f.revisions, "revisions", 2, "Revisions allowed")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("title")
}

func (f *cardFlags) build(cmd *cobra.Command, app *App) (*domain.WorkCard, error) {
	ctx := cmd.Context()
	wsID, err := resolveWorkspaceID(ctx, app, f.workspace)
	if err != nil {
		return nil, err
	}
	var projectID string
	if f.project != "" {
		if projectID, err = resolveProjectID(ctx, app, f.project); err != nil {
			return nil, err
		}
	}
	inputs, err := parseKeyValues("input", f.inputs)
	if err != nil {
		return nil, err
	}
	deliverables := make(map[string]domain.Deliverable, len(f.deliverables))
	for _, name := range f.deliverables {
		deliverables[name] = domain.Deliverable{Status: domain.DeliverablePending}
	}
	return &domain.WorkCard{
		WorkspaceID:      wsID,
		ProjectID:        projectID,
		Category:         f.category,
		Type:             f.kind,
		Title:            f.title,
		RevisionsAllowed: f.revisions,
		Inputs:           inputs,
		Deliverables:     deliverables,
	}, nil
}

func newCardAddCmd(app *App) *cobra.Command {
	var f cardFlags
	status := newEnumValue(string(domain.CardDraft), enumStrings(domain.CardDraft, domain.CardStaged)...)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a work card without charging credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.build(cmd, app)
			if err != nil {
				return err
			}
			c.Status = domain.WorkCardStatus(status.String())
			if err := app.Cards.Create(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created card %s (%s)\n", c.Title, c.ID)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().Var(status, "status", "Initial status (draft|staged)")

	return cmd
}

func newCardRequestCmd(app *App) *cobra.Command {
	var f cardFlags

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Submit a new request, charging the NEW_REQUEST price",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.build(cmd, app)
			if err != nil {
				return err
			}
			if err := app.Cards.SubmitRequest(cmd.Context(), c); err != nil {
				return err
			}
			return printBalance(cmd, app, c.WorkspaceID,
				fmt.Sprintf("Submitted %s (%s) for %d credits.", c.Title, c.ID, c.CreditsUsed))
		},
	}

	f.register(cmd)

	return cmd
}

func newCardListCmd(app *App) *cobra.Command {
	var workspace, project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work cards, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var cards []*domain.WorkCard
			if project != "" {
				projectID, err := resolveProjectID(ctx, app, project)
				if err != nil {
					// cards may still point at a replaced project
					projectID = project
				}
				if cards, err = app.Cards.ListByProject(ctx, projectID); err != nil {
					return err
				}
			} else {
				wsID, err := resolveWorkspaceID(ctx, app, workspace)
				if err != nil {
					return err
				}
				if cards, err = app.Cards.ListByWorkspace(ctx, wsID); err != nil {
					return err
				}
			}
			if len(cards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No work cards found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCardList(cards))
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace ID, prefix or name")
	cmd.Flags().StringVar(&project, "project", "", "Only cards of this project")

	return cmd
}

func newCardShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a work card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Cards.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCard(c))
			return nil
		},
	}
}

func newCardUpdateCmd(app *App) *cobra.Command {
	var title, status, summary, project string
	var inputs, metrics, nextSteps, team []string
	var revisions int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Patch a work card; map flags replace the whole map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var patch domain.WorkCardPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("status") {
				s := domain.WorkCardStatus(status)
				patch.Status = &s
			}
			if flags.Changed("summary") {
				patch.AISummary = &summary
			}
			if flags.Changed("project") {
				patch.ProjectID = &project
			}
			if flags.Changed("revisions") {
				patch.RevisionsAllowed = &revisions
			}
			if flags.Changed("input") {
				if patch.Inputs, err = parseKeyValues("input", inputs); err != nil {
					return err
				}
			}
			if flags.Changed("metric") {
				if patch.Metrics, err = parseMetrics(metrics); err != nil {
					return err
				}
			}
			if flags.Changed("next-step") {
				patch.NextSteps = nextSteps
			}
			if flags.Changed("team") {
				patch.Team = team
			}

			c, err := app.Cards.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated card %s [%s]\n", c.Title, c.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringVar(&summary, "summary", "", "AI summary text")
	cmd.Flags().StringVar(&project, "project", "", "Move to project ID")
	cmd.Flags().IntVar(&revisions, "revisions", 0, "Revisions allowed")
	cmd.Flags().StringArrayVar(&inputs, "input", nil, "Replace inputs (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&metrics, "metric", nil, "Replace metrics (key=number, repeatable)")
	cmd.Flags().StringArrayVar(&nextSteps, "next-step", nil, "Replace next steps (repeatable)")
	cmd.Flags().StringSliceVar(&team, "team", nil, "Replace team members")

	return cmd
}

func newCardDeliverableCmd(app *App) *cobra.Command {
	var url string
	var pending bool

	cmd := &cobra.Command{
		Use:   "deliverable ID NAME",
		Short: "Record one deliverable as ready (or pending)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			d := domain.Deliverable{Status: domain.DeliverableReady, URL: url}
			if pending {
				d.Status = domain.DeliverablePending
			}
			c, err := app.Cards.SetDeliverable(ctx, id, args[1], d)
			if err != nil {
				return err
			}
			left := "none"
			if names := c.PendingDeliverables(); len(names) > 0 {
				left = strings.Join(names, ", ")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deliverable %s is %s; pending: %s\n", args[1], d.Status, left)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Where the deliverable lives")
	cmd.Flags().BoolVar(&pending, "pending", false, "Mark as pending instead of ready")

	return cmd
}

func parseMetrics(pairs []string) (map[string]float64, error) {
	kv, err := parseKeyValues("metric", pairs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(kv))
	for k, v := range kv {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %q is not a number", k, v)
		}
		out[k] = f
	}
	return out, nil
}
