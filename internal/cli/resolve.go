package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyos/internal/domain"
)

// matchID resolves user input against a list of entities, trying in order:
// exact id, case-insensitive name, then unique id prefix.
func matchID[T any](entity, input string, items []T, id, name func(T) string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", entity)
	}
	for _, it := range items {
		if id(it) == input {
			return input, nil
		}
	}
	var named []string
	for _, it := range items {
		if name != nil && strings.EqualFold(name(it), input) {
			named = append(named, id(it))
		}
	}
	if len(named) == 1 {
		return named[0], nil
	}

	var matches []string
	for _, it := range items {
		if strings.HasPrefix(id(it), input) {
			matches = append(matches, id(it))
		}
	}
	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) > 1:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", entity, input, len(matches))
	case len(named) > 1:
		return "", fmt.Errorf("%s name %q is ambiguous (%d matches)", entity, input, len(named))
	default:
		return "", fmt.Errorf("%s not found: %q", entity, input)
	}
}

// resolveWorkspaceID accepts an id, id prefix or name. An empty input picks
// the only workspace when exactly one exists.
func resolveWorkspaceID(ctx context.Context, app *App, input string) (string, error) {
	workspaces, err := app.Workspaces.List(ctx)
	if err != nil {
		return "", err
	}
	if input == "" && len(workspaces) == 1 {
		return workspaces[0].ID, nil
	}
	return matchID("workspace", input, workspaces,
		func(w *domain.Workspace) string { return w.ID },
		func(w *domain.Workspace) string { return w.Name })
}

// eachWorkspace calls fn for every workspace until fn fails.
func eachWorkspace(ctx context.Context, app *App, fn func(ws *domain.Workspace) error) error {
	workspaces, err := app.Workspaces.List(ctx)
	if err != nil {
		return err
	}
	for _, ws := range workspaces {
		if err := fn(ws); err != nil {
			return err
		}
	}
	return nil
}

func resolveCardID(ctx context.Context, app *App, input string) (string, error) {
	if _, err := app.Cards.GetByID(ctx, input); err == nil {
		return input, nil
	}
	var all []*domain.WorkCard
	err := eachWorkspace(ctx, app, func(ws *domain.Workspace) error {
		cards, err := app.Cards.ListByWorkspace(ctx, ws.ID)
		all = append(all, cards...)
		return err
	})
	if err != nil {
		return "", err
	}
	return matchID("work card", input, all, func(c *domain.WorkCard) string { return c.ID }, nil)
}

func resolveTicketID(ctx context.Context, app *App, input string) (string, error) {
	var all []*domain.Ticket
	err := eachWorkspace(ctx, app, func(ws *domain.Workspace) error {
		tickets, err := app.Tickets.ListByWorkspace(ctx, ws.ID)
		all = append(all, tickets...)
		return err
	})
	if err != nil {
		return "", err
	}
	return matchID("ticket", input, all, func(t *domain.Ticket) string { return t.ID }, nil)
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	var all []*domain.Project
	err := eachWorkspace(ctx, app, func(ws *domain.Workspace) error {
		projects, err := app.Projects.ListByWorkspace(ctx, ws.ID)
		all = append(all, projects...)
		return err
	})
	if err != nil {
		return "", err
	}
	return matchID("project", input, all,
		func(p *domain.Project) string { return p.ID },
		func(p *domain.Project) string { return p.Name })
}
