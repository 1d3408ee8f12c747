package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pomoHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func pomoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

var errNotPositive = errors.New("enter a positive number")

// validatePositiveInt accepts a whole number greater than zero.
func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return errNotPositive
	}
	return nil
}

// minutesInput returns a huh.Input bound to a positive integer field.
func minutesInput(title, description string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description(description).
		Value(value).
		Validate(validatePositiveInt)
}

// settingsFormValues holds the text bound to the settings form fields.
type settingsFormValues struct {
	focus    string
	short    string
	long     string
	interval string
}

func newSettingsFormValues(s domain.Settings) *settingsFormValues {
	return &settingsFormValues{
		focus:    strconv.Itoa(s.FocusMinutes),
		short:    strconv.Itoa(s.ShortBreakMinutes),
		long:     strconv.Itoa(s.LongBreakMinutes),
		interval: strconv.Itoa(s.LongBreakInterval),
	}
}

// settings parses the form values. Validation of the ranges themselves is
// left to domain.Settings.Validate.
func (v *settingsFormValues) settings() (domain.Settings, error) {
	var s domain.Settings
	fields := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"focus minutes", v.focus, &s.FocusMinutes},
		{"short break minutes", v.short, &s.ShortBreakMinutes},
		{"long break minutes", v.long, &s.LongBreakMinutes},
		{"long break interval", v.interval, &s.LongBreakInterval},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f.raw))
		if err != nil {
			return domain.Settings{}, errors.New(f.name + ": " + errNotPositive.Error())
		}
		*f.dst = n
	}
	return s, s.Validate()
}

// settingsForm returns a themed form for editing all timer settings.
func settingsForm(values *settingsFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			minutesInput("Focus", "minutes per focus session", &values.focus),
			minutesInput("Short Break", "minutes", &values.short),
			minutesInput("Long Break", "minutes", &values.long),
			minutesInput("Long Break Interval", "focus sessions before a long break", &values.interval),
		),
	).WithTheme(pomoHuhTheme()).WithShowHelp(false)
}
