package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cvvishnuu/portfolio/internal/contact"
)

// messageHeight is fixed so the contact section keeps a constant height and
// section tops do not move while typing.
const messageHeight = 5

// contactForm is the three-field message editor of the contact section.
type contactForm struct {
	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   int
	focused bool
}

func newContactForm() contactForm {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.Prompt = ""
	name.CharLimit = 120

	email := textinput.New()
	email.Placeholder = "your.email@example.com"
	email.Prompt = ""
	email.CharLimit = 254

	message := textarea.New()
	message.Placeholder = "Your message..."
	message.ShowLineNumbers = false
	message.SetHeight(messageHeight)

	return contactForm{name: name, email: email, message: message}
}

// SetWidth resizes the inputs.
func (form *contactForm) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	form.name.Width = width
	form.email.Width = width
	form.message.SetWidth(width)
}

// Focus activates the form at the current field.
func (form *contactForm) Focus() tea.Cmd {
	form.focused = true
	return form.focusCurrent()
}

// Blur deactivates every field.
func (form *contactForm) Blur() {
	form.focused = false
	form.name.Blur()
	form.email.Blur()
	form.message.Blur()
}

// Focused reports whether the form is receiving keys.
func (form *contactForm) Focused() bool {
	return form.focused
}

// NextField cycles focus through the fields.
func (form *contactForm) NextField() tea.Cmd {
	form.focus = (form.focus + 1) % len(contact.Fields)
	return form.focusCurrent()
}

func (form *contactForm) focusCurrent() tea.Cmd {
	form.name.Blur()
	form.email.Blur()
	form.message.Blur()
	switch contact.Fields[form.focus] {
	case contact.FieldName:
		return form.name.Focus()
	case contact.FieldEmail:
		return form.email.Focus()
	default:
		return form.message.Focus()
	}
}

// Update forwards a message to the focused field.
func (form contactForm) Update(message tea.Msg) (contactForm, tea.Cmd) {
	var cmd tea.Cmd
	switch contact.Fields[form.focus] {
	case contact.FieldName:
		form.name, cmd = form.name.Update(message)
	case contact.FieldEmail:
		form.email, cmd = form.email.Update(message)
	default:
		form.message, cmd = form.message.Update(message)
	}
	return form, cmd
}

// Values returns the draft as typed.
func (form contactForm) Values() contact.Form {
	return contact.Form{
		Name:    form.name.Value(),
		Email:   form.email.Value(),
		Message: form.message.Value(),
	}
}

// SetValues replaces the field contents, e.g. to clear them after a
// successful send.
func (form *contactForm) SetValues(values contact.Form) {
	form.name.SetValue(values.Name)
	form.email.SetValue(values.Email)
	form.message.SetValue(values.Message)
}

// View renders the labelled fields. Its height never changes.
func (form contactForm) View(theme Theme) string {
	label := lipgloss.NewStyle().Foreground(theme.FaintText)
	active := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	labelFor := func(index int, text string) string {
		if form.focused && form.focus == index {
			return active.Render("› " + text)
		}
		return label.Render("  " + text)
	}

	var builder strings.Builder
	builder.WriteString(labelFor(0, "Name") + "\n")
	builder.WriteString("  " + form.name.View() + "\n")
	builder.WriteString(labelFor(1, "Email") + "\n")
	builder.WriteString("  " + form.email.View() + "\n")
	builder.WriteString(labelFor(2, "Message") + "\n")
	builder.WriteString(form.message.View())
	return builder.String()
}
