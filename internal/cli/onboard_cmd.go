package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/agencyos/internal/cli/formatter"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/alexanderramin/agencyos/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// onboardInput carries the workspace profile, as typed into flags or the
// wizard.
type onboardInput struct {
	name, brand, website, tone string
	credits                    string
	channels                   []string
}

func (in onboardInput) profile() service.WorkspaceProfile {
	return service.WorkspaceProfile{
		Name:      strings.TrimSpace(in.name),
		BrandName: strings.TrimSpace(in.brand),
		Website:   strings.TrimSpace(in.website),
		Tone:      strings.TrimSpace(in.tone),
		Channels:  in.channels,
	}
}

func newOnboardCmd(app *App) *cobra.Command {
	var in onboardInput
	var workspace string
	var credits int
	var selects, renames, skips []string

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Onboard a client: pick services, confirm projects, stage cards",
		Long: `Onboard a client workspace.

Without --select on a terminal, an interactive wizard asks for the profile,
the services per category and which proposed projects to keep. Otherwise the
selections come from flags:

  agencyos onboard --name "Northwind" --select video="Launch reel,Testimonial" --select web="Landing page"

Onboarding an existing workspace (--workspace) replaces its projects.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := service.OnboardingRequest{OpeningCredits: credits}
			if workspace != "" {
				wsID, err := resolveWorkspaceID(ctx, app, workspace)
				if err != nil {
					return err
				}
				req.WorkspaceID = wsID
			}

			var conf *domain.Confirmation
			var err error
			if len(selects) == 0 && app.interactive() {
				conf, err = runOnboardWizard(ctx, &in, req.WorkspaceID == "")
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
				if err != nil {
					return err
				}
				if in.credits != "" {
					req.OpeningCredits = parseNonNegativeInt(in.credits, service.DefaultOpeningCredits)
				}
			} else {
				conf, err = confirmationFromFlags(selects, renames, skips)
				if err != nil {
					return err
				}
			}
			req.Profile = in.profile()
			req.Confirmation = conf

			if drafts := conf.Drafts(); len(drafts) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDrafts(drafts))
			}
			res, err := app.Onboarding.Complete(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOnboarding(res.Workspace, res.Projects, len(res.Cards), res.ReplacedProjects))
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Existing workspace to re-onboard (ID, prefix or name)")
	cmd.Flags().StringVar(&in.name, "name", "", "Client name for a new workspace")
	cmd.Flags().StringVar(&in.brand, "brand", "", "Brand name (defaults to --name)")
	cmd.Flags().StringVar(&in.website, "website", "", "Client website")
	cmd.Flags().StringVar(&in.tone, "tone", "", "Tone of voice")
	cmd.Flags().StringSliceVar(&in.channels, "channel", nil, "Marketing channel (repeatable)")
	cmd.Flags().IntVar(&credits, "credits", 0, "Opening credits for a new workspace; 0 grants "+strconv.Itoa(service.DefaultOpeningCredits))
	cmd.Flags().StringArrayVar(&selects, "select", nil, `Services for a category, as category="svc1,svc2" (repeatable)`)
	cmd.Flags().StringArrayVar(&renames, "rename", nil, `Rename the project for a category, as category="New name" (repeatable)`)
	cmd.Flags().StringSliceVar(&skips, "skip", nil, "Deselect the project for a category (repeatable)")

	return cmd
}

// runOnboardWizard walks the profile, category, services and confirmation
// forms in turn.
func runOnboardWizard(ctx context.Context, in *onboardInput, newWorkspace bool) (*domain.Confirmation, error) {
	if newWorkspace {
		if err := wizardProfile(in).RunWithContext(ctx); err != nil {
			return nil, err
		}
	}
	var categories []string
	if err := wizardCategories(&categories).RunWithContext(ctx); err != nil {
		return nil, err
	}
	answers := make(map[string]*string, len(categories))
	if err := wizardServices(categories, answers).RunWithContext(ctx); err != nil {
		return nil, err
	}

	conf := domain.NewConfirmation(servicesFromAnswers(answers))
	drafts := conf.Drafts()
	keep := make([]string, 0, len(drafts))
	for _, d := range drafts {
		keep = append(keep, d.Key)
	}
	if err := wizardConfirmDrafts(drafts, &keep).RunWithContext(ctx); err != nil {
		return nil, err
	}
	if err := applyKeep(conf, keep); err != nil {
		return nil, err
	}
	return conf, nil
}

// confirmationFromFlags builds and edits a confirmation from --select,
// --rename and --skip.
func confirmationFromFlags(selects, renames, skips []string) (*domain.Confirmation, error) {
	sel, err := parseSelections(selects)
	if err != nil {
		return nil, err
	}
	conf := domain.NewConfirmation(sel)

	names, err := parseKeyValues("rename", renames)
	if err != nil {
		return nil, err
	}
	for category, name := range names {
		key, err := draftKeyFor(conf, category)
		if err != nil {
			return nil, err
		}
		if err := conf.Rename(key, name); err != nil {
			return nil, err
		}
	}
	for _, category := range skips {
		key, err := draftKeyFor(conf, category)
		if err != nil {
			return nil, err
		}
		if err := conf.Toggle(key, false); err != nil {
			return nil, err
		}
	}
	return conf, nil
}

// parseSelections reads repeated category="svc1,svc2" flags. Repeating a
// category appends to its services.
func parseSelections(pairs []string) (domain.Selections, error) {
	sel := make(domain.Selections, len(pairs))
	for _, p := range pairs {
		category, services, ok := strings.Cut(p, "=")
		category = strings.TrimSpace(category)
		if !ok || category == "" {
			return nil, fmt.Errorf("invalid --select format %q, expected category=svc1,svc2", p)
		}
		sel[category] = append(sel[category], splitList(services)...)
	}
	return sel, nil
}

func draftKeyFor(conf *domain.Confirmation, category string) (string, error) {
	for _, d := range conf.Drafts() {
		if d.Category == category {
			return d.Key, nil
		}
	}
	return "", fmt.Errorf("no proposed project for category %q: %w", category, domain.ErrDraftNotFound)
}
