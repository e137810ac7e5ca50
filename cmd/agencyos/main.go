package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/agencyos/internal/autoreply"
	"github.com/alexanderramin/agencyos/internal/cli"
	"github.com/alexanderramin/agencyos/internal/config"
	"github.com/alexanderramin/agencyos/internal/db"
	"github.com/alexanderramin/agencyos/internal/logging"
	"github.com/alexanderramin/agencyos/internal/repository"
	"github.com/alexanderramin/agencyos/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.Setup(cfg.LogLevel, os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	workspaceRepo := repository.NewSQLiteWorkspaceRepo(database)
	ledgerRepo := repository.NewSQLiteLedgerRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	cardRepo := repository.NewSQLiteWorkCardRepo(database)
	ticketRepo := repository.NewSQLiteTicketRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	replies := autoreply.New(cfg.AutoReplyDelay, logging.WithComponent(logger, "autoreply"))
	tickets := service.NewTicketService(ticketRepo, uow, replies, observers...)
	defer tickets.Close()

	workspaces := service.NewWorkspaceService(workspaceRepo, ledgerRepo, uow, observers...)
	cards := service.NewWorkCardService(cardRepo, uow, observers...)
	onboarding := service.NewOnboardingService(uow, observers...)

	app := &cli.App{
		Workspaces: workspaces,
		Cards:      cards,
		Projects:   service.NewProjectService(projectRepo, uow),
		Tickets:    tickets,
		Onboarding: onboarding,
		Metrics:    service.NewMetricsImportService(cardRepo, uow, observers...),
		Seed:       service.NewSeedService(workspaces, onboarding, cards, tickets),
	}

	// Wizards and spinners only run on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := deliverOverdueReplies(ctx, tickets, cfg.AutoReplyDelay+5*time.Second, logger); err != nil {
		return err
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// deliverOverdueReplies picks up auto-replies a previous run scheduled but
// exited before posting. Overdue ones are posted before the command runs.
func deliverOverdueReplies(ctx context.Context, tickets service.TicketService, timeout time.Duration, logger *slog.Logger) error {
	due, err := tickets.ResumeAutoReplies(ctx)
	if err != nil {
		return fmt.Errorf("resuming auto-replies: %w", err)
	}
	if len(due) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	for _, id := range due {
		if err := tickets.WaitForAutoReply(ctx, id); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				logger.Warn("overdue auto-reply still pending", "ticket", id)
				continue
			}
			return fmt.Errorf("posting auto-reply for %s: %w", id, err)
		}
	}
	logger.Debug("posted overdue auto-replies", "count", len(due))
	return nil
}
