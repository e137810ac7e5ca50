package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/agencyos/internal/autoreply"
	"github.com/alexanderramin/agencyos/internal/cli/formatter"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/spf13/cobra"
)

func newTicketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Open and follow support tickets",
	}

	cmd.AddCommand(
		newTicketCreateCmd(app),
		newTicketListCmd(app),
		newTicketShowCmd(app),
		newTicketReplyCmd(app),
		newTicketStatusCmd(app),
	)

	return cmd
}

func newTicketCreateCmd(app *App) *cobra.Command {
	var workspace, title, card, message, from string
	var noWait bool
	kind := newEnumValue(string(domain.TicketRequest), enumStrings(
		domain.TicketClarification, domain.TicketRevision, domain.TicketIssue,
		domain.TicketRequest, domain.TicketAnnouncement,
	)...)
	priority := newEnumValue(string(domain.PriorityNormal), enumStrings(
		domain.PriorityLow, domain.PriorityNormal, domain.PriorityHigh, domain.PriorityUrgent,
	)...)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a ticket and wait for the assistant's first reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			wsID, err := resolveWorkspaceID(ctx, app, workspace)
			if err != nil {
				return err
			}
			t := &domain.Ticket{
				WorkspaceID: wsID,
				Title:       title,
				Type:        domain.TicketType(kind.String()),
				Priority:    domain.TicketPriority(priority.String()),
			}
			if card != "" {
				cardID, err := resolveCardID(ctx, app, card)
				if err != nil {
					return err
				}
				t.WorkCardID = &cardID
			}
			if message != "" {
				t.Messages = []domain.TicketMessage{{SenderID: from, SenderType: domain.SenderUser, Text: message}}
			}
			if err := app.Tickets.Create(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened ticket %s (%s)\n", t.Title, t.ID)
			if noWait {
				return nil
			}
			return showAfterReply(cmd, app, t.ID)
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace ID, prefix or name")
	cmd.Flags().StringVar(&title, "title", "", "Ticket title")
	cmd.Flags().Var(kind, "type", "Ticket type (clarification|revision|issue|request|announcement)")
	cmd.Flags().Var(priority, "priority", "Priority (low|normal|high|urgent)")
	cmd.Flags().StringVar(&card, "card", "", "Related work card ID")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Opening message")
	cmd.Flags().StringVar(&from, "from", "client", "Sender of the opening message")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Return without waiting; the auto-reply is posted by a later run if this one exits first")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// showAfterReply waits for the auto-reply and prints the thread. A reply that
// was cancelled (ticket closed) is not an error.
func showAfterReply(cmd *cobra.Command, app *App, ticketID string) error {
	err := watchReply(cmd.Context(), app, ticketID, cmd.ErrOrStderr())
	switch {
	case errors.Is(err, errWatchAborted), errors.Is(err, autoreply.ErrCancelled):
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No auto-reply yet."))
	case err != nil:
		return err
	}
	t, err := app.Tickets.GetByID(cmd.Context(), ticketID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTicket(t))
	return nil
}

func newTicketListCmd(app *App) *cobra.Command {
	var workspace, card string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var tickets []*domain.Ticket
			if card != "" {
				cardID, err := resolveCardID(ctx, app, card)
				if err != nil {
					return err
				}
				if tickets, err = app.Tickets.ListByWorkCard(ctx, cardID); err != nil {
					return err
				}
			} else {
				wsID, err := resolveWorkspaceID(ctx, app, workspace)
				if err != nil {
					return err
				}
				if tickets, err = app.Tickets.ListByWorkspace(ctx, wsID); err != nil {
					return err
				}
			}
			if len(tickets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tickets found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTicketList(tickets))
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace ID, prefix or name")
	cmd.Flags().StringVar(&card, "card", "", "Only tickets about this work card")

	return cmd
}

func newTicketShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a ticket thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tickets.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTicket(t))
			return nil
		},
	}
}

func newTicketReplyCmd(app *App) *cobra.Command {
	var from string
	as := newEnumValue(string(domain.SenderUser), enumStrings(domain.SenderUser, domain.SenderAgent)...)

	cmd := &cobra.Command{
		Use:   "reply ID TEXT",
		Short: "Append a message to a ticket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Tickets.AddMessage(ctx, id, domain.TicketMessage{
				SenderID:   from,
				SenderType: domain.SenderType(as.String()),
				Text:       args[1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMessage(m))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "client", "Sender ID")
	cmd.Flags().Var(as, "as", "Sender type (user|agent)")

	return cmd
}

func newTicketStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move a ticket to open|in_progress|waiting_on_client|resolved|closed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTicketID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status := domain.TicketStatus(args[1])
			if err := app.Tickets.SetStatus(ctx, id, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ticket %s is now %s\n", id, status)
			return nil
		},
	}
}
