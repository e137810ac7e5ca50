package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/agencyos/internal/cli/formatter"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create and inspect projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectStatusCmd(app),
	)

	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var workspace, name, target string
	var services []string
	kind := newEnumValue(string(domain.ProjectOneOff), enumStrings(
		domain.ProjectCampaign, domain.ProjectRetainer, domain.ProjectOneOff,
	)...)
	review := newEnumValue("", enumStrings(domain.ReviewAsync, domain.ReviewLiveCall)...)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a project to a workspace without onboarding",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			wsID, err := resolveWorkspaceID(ctx, app, workspace)
			if err != nil {
				return err
			}
			p := &domain.Project{
				WorkspaceID: wsID,
				Name:        name,
				Type:        domain.ProjectType(kind.String()),
			}
			if v := review.String(); v != "" {
				p.ReviewPreference = domain.Ptr(domain.ReviewPreference(v))
			}
			if target != "" {
				d, err := time.Parse(time.DateOnly, target)
				if err != nil {
					return fmt.Errorf("invalid --target %q, expected YYYY-MM-DD", target)
				}
				p.TargetDate = &d
			}
			for _, s := range services {
				p.IncludedServices = append(p.IncludedServices, splitList(s)...)
			}
			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace ID, prefix or name")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().Var(kind, "type", "Project type (campaign|retainer|one_off)")
	cmd.Flags().Var(review, "review", "Review preference (async|live_call)")
	cmd.Flags().StringVar(&target, "target", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&services, "service", nil, "Included service; repeat or comma-separate")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a workspace's projects with their card counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			wsID, err := resolveWorkspaceID(ctx, app, workspace)
			if err != nil {
				return err
			}
			projects, err := app.Projects.ListByWorkspace(ctx, wsID)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found. Run `agencyos onboard` or `agencyos project create`.")
				return nil
			}
			counts := make(map[string]int, len(projects))
			for _, p := range projects {
				cards, err := app.Cards.ListByProject(ctx, p.ID)
				if err != nil {
					return err
				}
				counts[p.ID] = len(cards)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, counts))
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace ID, prefix or name")

	return cmd
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move a project to planning|active|paused|completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.SetStatus(ctx, id, domain.ProjectStatus(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %s is now %s\n", id, args[1])
			return nil
		},
	}
}
