package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the portfolio viewer. Scrolling keys
// (j/k, arrows, page up/down) are handled by the viewport's own key map.
type KeyMap struct {
	// Section jumps. Sections[i] jumps to the i-th navigation entry.
	Sections    []key.Binding
	NextSection key.Binding

	// Contact form.
	FocusForm key.Binding
	NextField key.Binding
	Submit    key.Binding
	LeaveForm key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Sections: []key.Binding{
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "about")),
		key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "experience")),
		key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "projects")),
		key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "skills")),
		key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "contact")),
	},
	NextSection: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next section"),
	),
	FocusForm: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "write message"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "send"),
	),
	LeaveForm: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
