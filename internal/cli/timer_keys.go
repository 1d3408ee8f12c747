package cli

import (
	"github.com/charmbracelet/bubbles/key"
)

// timerKeyMap binds the timer controls.
type timerKeyMap struct {
	Toggle key.Binding
	Pause  key.Binding
	Reset  key.Binding
	Focus  key.Binding
	Short  key.Binding
	Long   key.Binding
	Edit   key.Binding
	Quit   key.Binding
}

func defaultTimerKeyMap() timerKeyMap {
	return timerKeyMap{
		Toggle: key.NewBinding(key.WithKeys("s", " ", "space"), key.WithHelp("s/space", "start/pause")),
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Focus:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "focus")),
		Short:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "short break")),
		Long:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "long break")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "settings")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Focus, k.Short, k.Long, k.Edit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Pause, k.Reset},
		{k.Focus, k.Short, k.Long},
		{k.Edit, k.Quit},
	}
}
