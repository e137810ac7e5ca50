package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/agencyos/internal/service"
	"github.com/charmbracelet/huh"
)

// textInput returns a huh.Input, optionally rejecting blank answers.
func textInput(title, placeholder string, required bool, value *string) *huh.Input {
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value)
	if required {
		input = input.Validate(func(s string) error {
			if s == "" {
				return fmt.Errorf("%s is required", title)
			}
			return nil
		})
	}
	return input
}

// creditsInput returns a huh.Input for the opening credit balance.
func creditsInput(value *string) *huh.Input {
	def := strconv.Itoa(service.DefaultOpeningCredits)
	return huh.NewInput().
		Title("Opening credits").
		Placeholder(def).
		Value(value).
		Validate(validateNonNegativeInt)
}

// servicesInput returns a huh.Input for a comma-separated service list.
func servicesInput(category string, value *string) *huh.Input {
	return huh.NewInput().
		Title(category).
		Description("Comma-separated services").
		Value(value).
		Validate(validateServices)
}
