package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultSimulatedDelay is how long a submission pretends to take when no
// relay is configured.
const DefaultSimulatedDelay = 1500 * time.Millisecond

// ErrInFlight is returned by Submit while another submission is running.
var ErrInFlight = errors.New("contact: submission already in flight")

// MessageKind distinguishes the two relay messages of one submission.
type MessageKind string

const (
	// KindNotify goes to the site owner and carries the sender's message.
	KindNotify MessageKind = "notify"
	// KindAutoReply goes back to the sender.
	KindAutoReply MessageKind = "auto-reply"
)

// Message is one email handed to the relay. Params are the template
// variables the relay substitutes.
type Message struct {
	Kind     MessageKind
	Template string
	Params   map[string]string
}

// Relay delivers messages through an external email service.
type Relay interface {
	Send(ctx context.Context, msg Message) error
}

// RelayFunc adapts a function to the Relay interface.
type RelayFunc func(ctx context.Context, msg Message) error

// Send implements Relay.
func (f RelayFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

// Settings configures how a Controller reaches the relay.
type Settings struct {
	// Enabled is false when the relay has no credentials; submissions then
	// succeed after SimulatedDelay without any network traffic.
	Enabled              bool
	NotificationTemplate string
	AutoReplyTemplate    string
	SimulatedDelay       time.Duration
}

// Step names the part of a submission that failed.
type Step string

const (
	StepSimulated Step = "simulated"
	StepNotify    Step = Step(KindNotify)
	StepAutoReply Step = Step(KindAutoReply)
)

// Failure is returned by Submit when the submission ends in StatusError. The
// step is for diagnostics only; the sender just sees StatusError.
type Failure struct {
	Step Step
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("contact %s: %v", f.Step, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Snapshot is a consistent view of the controller state.
type Snapshot struct {
	Form       Form
	Status     Status
	Submitting bool
}

// Controller owns the state of one contact form.
type Controller struct {
	relay    Relay
	settings Settings
	logger   *slog.Logger
	wait     func(ctx context.Context, d time.Duration) error
	observe  func(Snapshot)

	mu         sync.Mutex
	form       Form
	status     Status
	submitting bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for relay diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithWait replaces the timer used by the simulated send.
func WithWait(wait func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Controller) { c.wait = wait }
}

// WithObserver registers a callback that receives every state change.
// It runs outside the controller's lock.
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Controller) { c.observe = fn }
}

// WithForm seeds the draft, e.g. from a posted HTML form.
func WithForm(form Form) Option {
	return func(c *Controller) { c.form = form }
}

// NewController creates a controller in StatusIdle with an empty draft.
// relay may be nil when settings.Enabled is false.
func NewController(relay Relay, settings Settings, opts ...Option) *Controller {
	if settings.SimulatedDelay <= 0 {
		settings.SimulatedDelay = DefaultSimulatedDelay
	}
	c := &Controller{
		relay:    relay,
		settings: settings,
		logger:   slog.Default(),
		wait:     sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update merges one field into the draft.
func (c *Controller) Update(field Field, value string) {
	c.mu.Lock()
	c.form = c.form.With(field, value)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Submit sends the current draft. It blocks until the submission reaches
// StatusSuccess or StatusError and returns nil or a *Failure respectively.
// The draft is cleared on success and kept on failure.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrInFlight
	}
	c.submitting = true
	c.status = StatusSubmitting
	draft := c.form
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	err := c.deliver(ctx, draft)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.status = StatusError
	} else {
		c.status = StatusSuccess
		c.form = Form{}
	}
	snap = c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	return err
}

func (c *Controller) deliver(ctx context.Context, draft Form) error {
	if !c.settings.Enabled || c.relay == nil {
		c.logger.Warn("email relay not configured, simulating send",
			"delay", c.settings.SimulatedDelay)
		if err := c.wait(ctx, c.settings.SimulatedDelay); err != nil {
			c.logger.Error("simulated send interrupted", "error", err)
			return &Failure{Step: StepSimulated, Err: err}
		}
		return nil
	}

	draft = draft.Normalized()
	messages := []Message{
		{
			Kind:     KindNotify,
			Template: c.settings.NotificationTemplate,
			Params: map[string]string{
				"name":    draft.Name,
				"message": fmt.Sprintf("%s messaged you - %s", draft.Email, draft.Message),
			},
		},
		{
			Kind:     KindAutoReply,
			Template: c.settings.AutoReplyTemplate,
			Params: map[string]string{
				"name":     draft.Name,
				"to_email": draft.Email,
			},
		},
	}

	for _, msg := range messages {
		c.logger.Info("sending contact email", "kind", msg.Kind, "template", msg.Template)
		if err := c.relay.Send(ctx, msg); err != nil {
			c.logger.Error("error sending contact email", "kind", msg.Kind, "error", err)
			return &Failure{Step: Step(msg.Kind), Err: err}
		}
	}
	c.logger.Info("contact emails sent")
	return nil
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{Form: c.form, Status: c.status, Submitting: c.submitting}
}

func (c *Controller) notify(snap Snapshot) {
	if c.observe != nil {
		c.observe(snap)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
