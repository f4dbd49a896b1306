package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adaForm = Form{Name: "Ada", Email: "ada@example.com", Message: "Hello"}

var enabledSettings = Settings{
	Enabled:              true,
	NotificationTemplate: "template_notify",
	AutoReplyTemplate:    "template_reply",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// statusRecorder collects the status of every observed state change.
type statusRecorder struct {
	mu       sync.Mutex
	statuses []Status
}

func (r *statusRecorder) observe(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s.Status)
}

func (r *statusRecorder) all() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Status(nil), r.statuses...)
}

// fakeRelay records messages and fails the send whose index is failAt.
type fakeRelay struct {
	mu     sync.Mutex
	sent   []Message
	failAt int
}

func (f *fakeRelay) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if len(f.sent)-1 == f.failAt {
		return errors.New("network error")
	}
	return nil
}

func TestUpdateMergesFields(t *testing.T) {
	c := NewController(nil, Settings{}, WithLogger(discardLogger()))

	c.Update(FieldName, "Ada")
	c.Update(FieldEmail, "ada@example.com")
	c.Update(Field("phone"), "ignored")

	snap := c.Snapshot()
	assert.Equal(t, Form{Name: "Ada", Email: "ada@example.com"}, snap.Form)
	assert.Equal(t, StatusIdle, snap.Status)
	assert.False(t, snap.Submitting)
}

func TestSubmitUnconfiguredRelaySimulatesSuccess(t *testing.T) {
	var waited time.Duration
	rec := &statusRecorder{}
	c := NewController(nil, Settings{Enabled: false},
		WithForm(adaForm),
		WithLogger(discardLogger()),
		WithObserver(rec.observe),
		WithWait(func(_ context.Context, d time.Duration) error {
			waited = d
			return nil
		}),
	)
	require.Equal(t, StatusIdle, c.Snapshot().Status)

	err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, waited)
	assert.Equal(t, []Status{StatusSubmitting, StatusSuccess}, rec.all())
	snap := c.Snapshot()
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, Form{}, snap.Form)
	assert.False(t, snap.Submitting)
}

func TestSubmitUnconfiguredRelayUsesRealTimer(t *testing.T) {
	c := NewController(nil, Settings{SimulatedDelay: 20 * time.Millisecond},
		WithForm(adaForm), WithLogger(discardLogger()))

	start := time.Now()
	require.NoError(t, c.Submit(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSubmitSimulatedSendHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewController(nil, Settings{}, WithForm(adaForm), WithLogger(discardLogger()))

	err := c.Submit(ctx)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, StepSimulated, failure.Step)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, adaForm, c.Snapshot().Form)
}

func TestSubmitConfiguredRelaySendsBothMessages(t *testing.T) {
	relay := &fakeRelay{failAt: -1}
	rec := &statusRecorder{}
	c := NewController(relay, enabledSettings,
		WithForm(adaForm), WithLogger(discardLogger()), WithObserver(rec.observe))

	require.NoError(t, c.Submit(context.Background()))

	require.Len(t, relay.sent, 2)
	assert.Equal(t, Message{
		Kind:     KindNotify,
		Template: "template_notify",
		Params: map[string]string{
			"name":    "Ada",
			"message": "ada@example.com messaged you - Hello",
		},
	}, relay.sent[0])
	assert.Equal(t, Message{
		Kind:     KindAutoReply,
		Template: "template_reply",
		Params: map[string]string{
			"name":     "Ada",
			"to_email": "ada@example.com",
		},
	}, relay.sent[1])
	assert.Equal(t, []Status{StatusSubmitting, StatusSuccess}, rec.all())
	assert.Equal(t, Form{}, c.Snapshot().Form)
}

func TestSubmitSecondCallFailureKeepsDraft(t *testing.T) {
	relay := &fakeRelay{failAt: 1}
	rec := &statusRecorder{}
	c := NewController(relay, enabledSettings,
		WithForm(adaForm), WithLogger(discardLogger()), WithObserver(rec.observe))

	err := c.Submit(context.Background())

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, StepAutoReply, failure.Step)
	assert.Len(t, relay.sent, 2)
	assert.Equal(t, []Status{StatusSubmitting, StatusError}, rec.all())
	snap := c.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, adaForm, snap.Form)
	assert.False(t, snap.Submitting)
}

func TestSubmitFirstCallFailureSkipsAutoReply(t *testing.T) {
	relay := &fakeRelay{failAt: 0}
	c := NewController(relay, enabledSettings, WithForm(adaForm), WithLogger(discardLogger()))

	err := c.Submit(context.Background())

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, StepNotify, failure.Step)
	assert.Len(t, relay.sent, 1)
	assert.Equal(t, StatusError, c.Snapshot().Status)
	assert.Equal(t, adaForm, c.Snapshot().Form)
}

func TestSubmitAfterErrorReturnsToSubmitting(t *testing.T) {
	relay := &fakeRelay{failAt: 0}
	rec := &statusRecorder{}
	c := NewController(relay, enabledSettings,
		WithForm(adaForm), WithLogger(discardLogger()), WithObserver(rec.observe))

	require.Error(t, c.Submit(context.Background()))
	relay.failAt = -1
	relay.sent = nil
	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, []Status{StatusSubmitting, StatusError, StatusSubmitting, StatusSuccess}, rec.all())
}

func TestSubmitRelaysMessageTextUnchanged(t *testing.T) {
	relay := &fakeRelay{failAt: -1}
	message := "if a<b and c>d then use <div> vs <span>; also Tom & Jerry"
	c := NewController(relay, enabledSettings, WithLogger(discardLogger()),
		WithForm(Form{Name: "  <b>Ada</b> ", Email: "ada@example.com\n", Message: message + "\n"}))

	require.NoError(t, c.Submit(context.Background()))

	require.Len(t, relay.sent, 2)
	assert.Equal(t, "<b>Ada</b>", relay.sent[0].Params["name"])
	assert.Equal(t, "ada@example.com messaged you - "+message, relay.sent[0].Params["message"])
	assert.Equal(t, "ada@example.com", relay.sent[1].Params["to_email"])
}

func TestSubmitWhileInFlightIsRejected(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	relay := RelayFunc(func(context.Context, Message) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return nil
	})
	c := NewController(relay, enabledSettings, WithForm(adaForm), WithLogger(discardLogger()))

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-started

	assert.True(t, c.Snapshot().Submitting)
	assert.Equal(t, StatusSubmitting, c.Snapshot().Status)
	assert.ErrorIs(t, c.Submit(context.Background()), ErrInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StatusSuccess, c.Snapshot().Status)
}
