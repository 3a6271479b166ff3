package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/cli/formatter"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/valuetype"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// basekitHuhTheme returns a huh theme using the formatter palette.
func basekitHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
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

// versionValueForm edits the value of v. Booleans get a select; everything
// else is typed and coerced on save.
func versionValueForm(v *domain.TimeParameterVersion, value *string) *huh.Form {
	title := fmt.Sprintf("%s from %s", v.Code, v.EffectiveDate.Format(valuetype.ISODate))

	var field huh.Field
	switch v.Type {
	case domain.TypeBoolean:
		field = huh.NewSelect[string]().
			Title(title).
			Options(
				huh.NewOption("True", "True"),
				huh.NewOption("False", "False"),
				huh.NewOption("(empty)", ""),
			).
			Value(value)
	case domain.TypeJSON:
		field = huh.NewText().
			Title(title).
			Description("JSON document").
			Value(value)
	default:
		field = huh.NewInput().
			Title(title).
			Description(fmt.Sprintf("%s value; left empty clears it", v.Type)).
			Value(value)
	}

	return huh.NewForm(huh.NewGroup(field)).WithTheme(basekitHuhTheme()).WithShowHelp(false)
}

// displayDate renders a stored ISO date in the acting user's format so it
// round-trips through coercion.
func displayDate(ctx context.Context, app *App, iso string) (string, error) {
	t, err := time.Parse(valuetype.ISODate, iso)
	if err != nil {
		return iso, nil
	}
	format, err := app.Users.DateFormat(ctx)
	if err != nil {
		return "", err
	}
	return valuetype.FormatDate(format, t), nil
}
