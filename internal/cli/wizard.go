package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/agencyos/internal/cli/formatter"
	"github.com/alexanderramin/agencyos/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// agencyHuhTheme returns a huh theme using the formatter palette.
func agencyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[✔] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themed(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(agencyHuhTheme()).WithShowHelp(false)
}

// suggestedServices seeds the per-category service prompt.
var suggestedServices = map[string]string{
	"paid_ads": "Meta ads, Google ads",
	"social":   "Instagram, LinkedIn",
	"content":  "Blog posts, Case studies",
	"email":    "Newsletter, Drip sequence",
	"video":    "Launch reel, Testimonial",
	"web":      "Landing page",
	"brand":    "Logo refresh, Style guide",
}

// wizardProfile collects the workspace profile for a new client.
func wizardProfile(p *onboardInput) *huh.Form {
	return themed(huh.NewGroup(
		textInput("Client name", "Northwind Coffee", true, &p.name),
		textInput("Brand name (blank for client name)", "", false, &p.brand),
		textInput("Website", "https://", false, &p.website),
		textInput("Tone of voice", "warm, playful", false, &p.tone),
		creditsInput(&p.credits),
	))
}

// wizardCategories asks which service categories the client wants.
func wizardCategories(result *[]string) *huh.Form {
	options := make([]huh.Option[string], 0, len(domain.OnboardingCategories()))
	for _, c := range domain.OnboardingCategories() {
		title, _ := domain.ProjectTitleFor(c)
		options = append(options, huh.NewOption(title, c))
	}
	return themed(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Which services does the client need?").
			Options(options...).
			Value(result).
			Validate(func(v []string) error {
				if len(v) == 0 {
					return fmt.Errorf("pick at least one category")
				}
				return nil
			}),
	))
}

// wizardServices asks for the concrete services under each category.
func wizardServices(categories []string, answers map[string]*string) *huh.Form {
	inputs := make([]huh.Field, 0, len(categories))
	for _, c := range categories {
		v := suggestedServices[c]
		answers[c] = &v
		title, _ := domain.ProjectTitleFor(c)
		inputs = append(inputs, servicesInput(title, answers[c]))
	}
	return themed(huh.NewGroup(inputs...))
}

// wizardConfirmDrafts lets the user deselect proposed projects.
func wizardConfirmDrafts(drafts []domain.ProjectDraft, keep *[]string) *huh.Form {
	options := make([]huh.Option[string], 0, len(drafts))
	for _, d := range drafts {
		label := fmt.Sprintf("%s (%s)", d.Name, strings.Join(d.Services, ", "))
		options = append(options, huh.NewOption(label, d.Key).Selected(d.Selected))
	}
	return themed(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Create these projects?").
			Description("Space toggles a project, enter confirms.").
			Options(options...).
			Value(keep),
	))
}

// servicesFromAnswers turns the wizard answers into selections.
func servicesFromAnswers(answers map[string]*string) domain.Selections {
	sel := make(domain.Selections, len(answers))
	for c, v := range answers {
		if v != nil {
			sel[c] = splitList(*v)
		}
	}
	return sel
}

// applyKeep deselects every draft whose key is not in keep.
func applyKeep(c *domain.Confirmation, keep []string) error {
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}
	for _, d := range c.Drafts() {
		if err := c.Toggle(d.Key, kept[d.Key]); err != nil {
			return err
		}
	}
	return nil
}

// parseNonNegativeInt parses s as a non-negative integer, returning fallback
// when s is empty or invalid.
func parseNonNegativeInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func validateServices(s string) error {
	if len(splitList(s)) == 0 {
		return fmt.Errorf("list at least one service")
	}
	return nil
}
