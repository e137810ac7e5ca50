package domain

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Selections maps an onboarding category (e.g. "paid_ads") to the services
// picked under it.
type Selections map[string][]string

type categoryTemplate struct {
	title string
	kind  ProjectType
}

var categoryTemplates = map[string]categoryTemplate{
	"paid_ads": {"Paid Ads Campaign", ProjectCampaign},
	"social":   {"Social Media Management", ProjectRetainer},
	"content":  {"Content Marketing", ProjectRetainer},
	"email":    {"Email Marketing", ProjectRetainer},
	"video":    {"Video Production", ProjectOneOff},
	"web":      {"Website Build", ProjectOneOff},
	"brand":    {"Brand Identity", ProjectOneOff},
}

// FallbackProjectTitle names drafts for categories without a template.
const FallbackProjectTitle = "Custom Project"

// OnboardingCategories lists the categories that have a title template, sorted.
func OnboardingCategories() []string {
	out := make([]string, 0, len(categoryTemplates))
	for c := range categoryTemplates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ProjectTitleFor returns the templated title and project type for a category.
func ProjectTitleFor(category string) (string, ProjectType) {
	if t, ok := categoryTemplates[category]; ok {
		return t.title, t.kind
	}
	return FallbackProjectTitle, ProjectOneOff
}

// ProjectDraft is a transient, editable proposal shown before projects are
// committed.
type ProjectDraft struct {
	Key      string
	Name     string
	Category string
	Type     ProjectType
	Services []string
	Selected bool
}

// Confirmation holds the editable draft list between synthesis and commit.
type Confirmation struct {
	drafts  []ProjectDraft
	nextKey int
}

// NewConfirmation synthesizes one selected draft per non-empty category, in
// category order.
func NewConfirmation(sel Selections) *Confirmation {
	c := &Confirmation{}
	categories := make([]string, 0, len(sel))
	for cat, services := range sel {
		if len(cleanServices(services)) > 0 {
			categories = append(categories, cat)
		}
	}
	sort.Strings(categories)
	for _, cat := range categories {
		title, kind := ProjectTitleFor(cat)
		c.push(ProjectDraft{
			Name:     title,
			Category: cat,
			Type:     kind,
			Services: cleanServices(sel[cat]),
			Selected: true,
		})
	}
	return c
}

func (c *Confirmation) push(d ProjectDraft) ProjectDraft {
	c.nextKey++
	d.Key = fmt.Sprintf("draft-%d", c.nextKey)
	c.drafts = append(c.drafts, d)
	return d
}

// Drafts returns a copy of every draft, selected or not.
func (c *Confirmation) Drafts() []ProjectDraft {
	return slices.Clone(c.drafts)
}

func (c *Confirmation) find(key string) (int, error) {
	for i := range c.drafts {
		if c.drafts[i].Key == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("draft %q: %w", key, ErrDraftNotFound)
}

func (c *Confirmation) Rename(key, name string) error {
	i, err := c.find(key)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("draft name is required: %w", ErrValidation)
	}
	c.drafts[i].Name = name
	return nil
}

func (c *Confirmation) Remove(key string) error {
	i, err := c.find(key)
	if err != nil {
		return err
	}
	c.drafts = slices.Delete(c.drafts, i, i+1)
	return nil
}

func (c *Confirmation) Toggle(key string, selected bool) error {
	i, err := c.find(key)
	if err != nil {
		return err
	}
	c.drafts[i].Selected = selected
	return nil
}

// Add appends a user-defined draft. An empty name falls back to the
// category's template title.
func (c *Confirmation) Add(name, category string, services []string) ProjectDraft {
	title, kind := ProjectTitleFor(category)
	if strings.TrimSpace(name) == "" {
		name = title
	}
	return c.push(ProjectDraft{
		Name:     strings.TrimSpace(name),
		Category: category,
		Type:     kind,
		Services: cleanServices(services),
		Selected: true,
	})
}

func (c *Confirmation) Selected() []ProjectDraft {
	var out []ProjectDraft
	for _, d := range c.drafts {
		if d.Selected {
			out = append(out, d)
		}
	}
	return out
}

// Materialize turns the selected drafts into projects in planning status and
// one staged work card per included service.
func (c *Confirmation) Materialize(workspaceID string, now time.Time, newID func() string) ([]*Project, []*WorkCard, error) {
	selected := c.Selected()
	if len(selected) == 0 {
		return nil, nil, ErrNoProjectsSelected
	}
	projects := make([]*Project, 0, len(selected))
	var cards []*WorkCard
	for _, d := range selected {
		p := &Project{
			ID:               newID(),
			WorkspaceID:      workspaceID,
			Name:             d.Name,
			Type:             d.Type,
			Status:           ProjectPlanning,
			IncludedServices: slices.Clone(d.Services),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		projects = append(projects, p)
		for _, svc := range d.Services {
			cards = append(cards, &WorkCard{
				ID:          newID(),
				WorkspaceID: workspaceID,
				ProjectID:   p.ID,
				Category:    d.Category,
				Type:        svc,
				Title:       svc,
				Status:      CardStaged,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
	}
	return projects, cards, nil
}

func cleanServices(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
