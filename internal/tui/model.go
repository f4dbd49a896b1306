// Package tui is the terminal rendition of the portfolio: a navigation bar,
// a scrollable page of sections that tracks which section is in view, and a
// contact form backed by the same controller as the web front end.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/cvvishnuu/portfolio/internal/contact"
	"github.com/cvvishnuu/portfolio/internal/portfolio"
	"github.com/cvvishnuu/portfolio/internal/section"
)

// Rows rather than pixels: a section becomes active a few rows before its
// heading reaches the top, and the bar restyles after the first row.
const (
	trackerLookahead       = 3
	trackerScrollThreshold = 1
)

// chromeHeight is the nav bar plus the status bar.
const chromeHeight = 2

type countTickMsg time.Time

type submitDoneMsg struct {
	err error
}

// Config holds the collaborators of a Model.
type Config struct {
	Portfolio  *portfolio.Portfolio
	Controller *contact.Controller
	Theme      *Theme
	Keys       *KeyMap
	Context    context.Context
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the bubbletea model of the terminal portfolio.
type Model struct {
	content    *portfolio.Portfolio
	controller *contact.Controller
	theme      Theme
	keys       KeyMap
	ctx        context.Context
	now        func() time.Time

	tracker  *section.Tracker
	tops     section.Tops
	viewport viewport.Model
	form     contactForm
	spinner  spinner.Model
	counter  *Counter

	submitting bool
	formStatus contact.Status

	logLine  string
	logLevel slog.Level
	logSeq   int

	width  int
	height int
	ready  bool
}

// New creates the model. Rendering starts on the first WindowSizeMsg.
func New(config Config) Model {
	theme := DefaultTheme
	if config.Theme != nil {
		theme = *config.Theme
	}
	keys := DefaultKeyMap
	if config.Keys != nil {
		keys = *config.Keys
	}
	ctx := config.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return Model{
		content:    config.Portfolio,
		controller: config.Controller,
		theme:      theme,
		keys:       keys,
		ctx:        ctx,
		now:        now,
		tracker: section.NewTracker(portfolio.NavIDs(),
			section.WithLookahead(trackerLookahead),
			section.WithScrollThreshold(trackerScrollThreshold)),
		tops:    section.Tops{},
		form:    newContactForm(),
		spinner: spin,
		counter: NewCounter(CountDuration),
	}
}

// Active returns the section currently highlighted in the nav bar.
func (model Model) Active() string {
	return model.tracker.Active()
}

func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		bodyHeight := max(message.Height-chromeHeight, 1)
		if !model.ready {
			model.viewport = viewport.New(message.Width, bodyHeight)
			model.viewport.MouseWheelEnabled = true
			model.ready = true
		} else {
			model.viewport.Width = message.Width
			model.viewport.Height = bodyHeight
		}
		model.form.SetWidth(min(message.Width-4, 72))
		model.refresh()
		cmd := model.observe()
		return model, cmd

	case tea.KeyMsg:
		if model.form.Focused() {
			return model.handleFormKeys(message)
		}
		return model.handleKeys(message)

	case tea.MouseMsg:
		var cmd tea.Cmd
		model.viewport, cmd = model.viewport.Update(message)
		observeCmd := model.observe()
		return model, tea.Batch(cmd, observeCmd)

	case countTickMsg:
		model.refresh()
		if model.counter.Running(model.now()) {
			return model, countTick()
		}

	case spinner.TickMsg:
		if !model.submitting {
			return model, nil
		}
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		model.refresh()
		return model, cmd

	case submitDoneMsg:
		model.submitting = false
		snapshot := model.controller.Snapshot()
		model.formStatus = snapshot.Status
		model.form.SetValues(snapshot.Form)
		model.refresh()

	case logRecordMsg:
		model.logSeq++
		model.logLine = message.Summary
		model.logLevel = message.Level
		seq := model.logSeq
		return model, tea.Tick(logFadeDelay, func(time.Time) tea.Msg {
			return logFadeMsg{Seq: seq}
		})

	case logFadeMsg:
		if message.Seq == model.logSeq {
			model.logLine = ""
		}
	}
	return model, nil
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.NextSection):
		cmd := model.jump(model.nextSection())
		return model, cmd

	case key.Matches(message, model.keys.FocusForm):
		focusCmd := model.form.Focus()
		model.refresh()
		jumpCmd := model.jump("contact")
		return model, tea.Batch(focusCmd, jumpCmd)
	}

	for index, binding := range model.keys.Sections {
		if key.Matches(message, binding) && index < len(portfolio.Nav) {
			cmd := model.jump(portfolio.Nav[index].ID)
			return model, cmd
		}
	}

	var cmd tea.Cmd
	model.viewport, cmd = model.viewport.Update(message)
	observeCmd := model.observe()
	return model, tea.Batch(cmd, observeCmd)
}

func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.LeaveForm):
		model.form.Blur()
		model.refresh()
		return model, nil

	case key.Matches(message, model.keys.NextField):
		cmd := model.form.NextField()
		model.refresh()
		return model, cmd

	case key.Matches(message, model.keys.Submit):
		return model.submit()
	}

	var cmd tea.Cmd
	model.form, cmd = model.form.Update(message)
	model.syncDraft()
	model.refresh()
	return model, cmd
}

// syncDraft copies the typed values into the controller.
func (model *Model) syncDraft() {
	if model.controller == nil {
		return
	}
	values := model.form.Values()
	for _, field := range contact.Fields {
		model.controller.Update(field, values.Get(field))
	}
}

func (model Model) submit() (tea.Model, tea.Cmd) {
	if model.controller == nil || model.submitting {
		return model, nil
	}
	model.syncDraft()
	if err := model.controller.Snapshot().Form.Validate(); err != nil {
		model.logSeq++
		model.logLine = "Please fill in your name, email and message."
		model.logLevel = slog.LevelWarn
		seq := model.logSeq
		return model, tea.Tick(logFadeDelay, func(time.Time) tea.Msg {
			return logFadeMsg{Seq: seq}
		})
	}

	model.submitting = true
	model.formStatus = contact.StatusSubmitting
	model.refresh()

	controller := model.controller
	ctx := model.ctx
	send := func() tea.Msg {
		return submitDoneMsg{err: controller.Submit(ctx)}
	}
	return model, tea.Batch(send, model.spinner.Tick)
}

// jump scrolls the viewport so the section's top is at the first row.
func (model *Model) jump(id string) tea.Cmd {
	scrolled := model.tracker.ScrollTo(id, model.tops, scrollFunc(func(_ string, top int) {
		model.viewport.SetYOffset(top)
	}))
	if !scrolled {
		return nil
	}
	return model.observe()
}

func (model Model) nextSection() string {
	ids := portfolio.NavIDs()
	for index, id := range ids {
		if id == model.tracker.Active() {
			return ids[(index+1)%len(ids)]
		}
	}
	return ids[0]
}

// observe feeds the current scroll offset to the tracker and starts the
// highlight counters the first time About becomes active.
func (model *Model) observe() tea.Cmd {
	model.tracker.Observe(model.viewport.YOffset, model.tops)
	if model.tracker.Active() == "about" && model.counter.Start(model.now()) {
		return countTick()
	}
	return nil
}

func countTick() tea.Cmd {
	return tea.Tick(CountTickInterval, func(t time.Time) tea.Msg {
		return countTickMsg(t)
	})
}

// refresh re-renders the page into the viewport, keeping the offset.
func (model *Model) refresh() {
	if !model.ready || model.content == nil {
		return
	}
	rendered := page{
		content:   model.content,
		theme:     model.theme,
		width:     max(model.width-2, 1),
		counter:   model.counter,
		now:       model.now(),
		form:      model.form.View(model.theme),
		formState: model.formStateLine(),
	}
	body, tops := rendered.render(model.viewport.Height)
	offset := model.viewport.YOffset
	model.viewport.SetContent(body)
	model.viewport.SetYOffset(offset)
	model.tops = tops
}

// formStateLine is always exactly one row.
func (model Model) formStateLine() string {
	switch {
	case model.submitting:
		return model.spinner.View() + " Sending..."
	case model.formStatus == contact.StatusSuccess:
		return lipgloss.NewStyle().Foreground(model.theme.SuccessText).Render(contact.SuccessMessage)
	case model.formStatus == contact.StatusError:
		return lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render(contact.ErrorMessage)
	case model.form.Focused():
		return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("C-s send · tab next field · esc back")
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("press c to write a message")
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "loading..."
	}
	return model.navBar() + "\n" + model.viewport.View() + "\n" + model.statusBar()
}

func (model Model) navBar() string {
	background := model.theme.NavBackground
	if model.tracker.Scrolled() {
		background = model.theme.NavScrolledBackground
	}
	base := lipgloss.NewStyle().Foreground(model.theme.NavForeground).Background(background).Padding(0, 1)
	active := lipgloss.NewStyle().
		Foreground(model.theme.NavActiveForeground).
		Background(model.theme.NavActiveBackground).
		Bold(true).
		Padding(0, 1)

	items := make([]string, 0, len(portfolio.Nav))
	for index, item := range portfolio.BuildNav(model.tracker.Active()) {
		label := fmt.Sprintf("%d %s", index+1, item.Label)
		if item.Active {
			items = append(items, active.Render(label))
		} else {
			items = append(items, base.Render(label))
		}
	}
	bar := strings.Join(items, "")
	bar = ansi.Truncate(bar, model.width, "…")
	fill := max(model.width-lipgloss.Width(bar), 0)
	return bar + lipgloss.NewStyle().Background(background).Render(strings.Repeat(" ", fill))
}

func (model Model) statusBar() string {
	if model.logLine != "" {
		color := model.theme.WarningText
		if model.logLevel >= slog.LevelError {
			color = model.theme.ErrorText
		}
		return lipgloss.NewStyle().Foreground(color).Render(ansi.Truncate(model.logLine, model.width, "…"))
	}
	help := "1-6 sections · tab next · j/k scroll · c contact · q quit"
	if model.form.Focused() {
		help = "C-s send · tab next field · esc back · C-c quit"
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(ansi.Truncate(help, model.width, "…"))
}

// scrollFunc adapts a function to section.Scroller.
type scrollFunc func(id string, top int)

func (f scrollFunc) ScrollTo(id string, top int) { f(id, top) }
