package cli

import (
	"time"

	"github.com/alexanderramin/agencyos/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Workspaces service.WorkspaceService
	Cards      service.WorkCardService
	Projects   service.ProjectService
	Tickets    service.TicketService
	Onboarding service.OnboardingService
	Metrics    service.MetricsImportService
	Seed       service.SeedService

	// IsInteractive reports whether stdin is a terminal. The onboarding
	// wizard and the reply spinner only run when it returns true.
	IsInteractive func() bool
	// ReplyTimeout bounds how long ticket commands wait for an auto-reply.
	ReplyTimeout time.Duration
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) replyTimeout() time.Duration {
	if a.ReplyTimeout > 0 {
		return a.ReplyTimeout
	}
	return 30 * time.Second
}

// NewRootCmd creates the top-level "agencyos" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "agencyos",
		Short:         "Agency workspace, credits, work cards and tickets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newWorkspaceCmd(app),
		newCardCmd(app),
		newProjectCmd(app),
		newTicketCmd(app),
		newOnboardCmd(app),
		newImportCmd(app),
		newSeedCmd(app),
	)

	return root
}
