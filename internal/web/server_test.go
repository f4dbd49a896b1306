package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvvishnuu/portfolio/internal/config"
	"github.com/cvvishnuu/portfolio/internal/contact"
	"github.com/cvvishnuu/portfolio/internal/portfolio"
	"github.com/cvvishnuu/portfolio/internal/store"
)

type recordingRelay struct {
	mu     sync.Mutex
	sent   []contact.Message
	failOn contact.MessageKind
}

func (r *recordingRelay) Send(_ context.Context, msg contact.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	if msg.Kind == r.failOn {
		return errors.New("relay rejected message")
	}
	return nil
}

type testServer struct {
	srv   *Server
	store *store.Store
}

func newTestServer(t *testing.T, relay contact.Relay, withStore bool) testServer {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Mode = "test"
	cfg.Admin.Password = "secret"

	deps := Deps{
		Config:    cfg,
		Portfolio: portfolio.MustLoad(),
		Relay:     relay,
		Settings: contact.Settings{
			Enabled:              relay != nil,
			NotificationTemplate: "template_notify",
			AutoReplyTemplate:    "template_reply",
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ContactOptions: []contact.Option{
			contact.WithWait(func(context.Context, time.Duration) error { return nil }),
		},
	}

	var st *store.Store
	if withStore {
		var err error
		st, err = store.OpenMemory(store.WithSalt("test-salt"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		deps.Store = st
	}

	srv, err := New(deps)
	require.NoError(t, err)
	return testServer{srv: srv, store: st}
}

func (ts testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func parseHTML(t *testing.T, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}

func postContact(name, email, message string) *http.Request {
	form := url.Values{"name": {name}, "email": {email}, "message": {message}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

func TestHomeRendersSectionsAndNav(t *testing.T) {
	ts := newTestServer(t, nil, false)

	rec := ts.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseHTML(t, rec.Body.Bytes())
	for _, id := range portfolio.NavIDs() {
		assert.Equal(t, 1, doc.Find("section#"+id).Length(), "section %s", id)
		assert.Equal(t, 1, doc.Find(`nav li a[href="#`+id+`"]`).Length(), "nav link %s", id)
	}
	assert.Zero(t, doc.Find("[data-section]").Length())

	active := doc.Find("nav a.active")
	require.Equal(t, 1, active.Length())
	href, _ := active.Attr("href")
	assert.Equal(t, "#home", href)

	doc.Find(`a[target="_blank"]`).Each(func(_ int, sel *goquery.Selection) {
		rel, _ := sel.Attr("rel")
		assert.Contains(t, rel, "noopener")
	})
	assert.Equal(t, 1, doc.Find("form#contact-form").Length())
}

func TestMailAndPhoneLinksOpenInNewTab(t *testing.T) {
	ts := newTestServer(t, nil, false)

	rec := ts.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseHTML(t, rec.Body.Bytes())
	links := doc.Find(`a[href^="mailto:"], a[href^="tel:"]`)
	require.GreaterOrEqual(t, links.Length(), 3) // contact email, phone, footer email
	links.Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		target, _ := sel.Attr("target")
		rel, _ := sel.Attr("rel")
		assert.Equal(t, "_blank", target, href)
		assert.Contains(t, rel, "noopener", href)
	})
}

func TestContactSimulatedSendClearsForm(t *testing.T) {
	ts := newTestServer(t, nil, true)

	rec := ts.do(t, postContact("Ada", "ada@example.com", "Hello there"))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseHTML(t, rec.Body.Bytes())
	assert.Equal(t, contact.SuccessMessage, strings.TrimSpace(doc.Find(".status.success").Text()))
	name, _ := doc.Find("input#name").Attr("value")
	email, _ := doc.Find("input#email").Attr("value")
	assert.Empty(t, name)
	assert.Empty(t, email)
	assert.Empty(t, strings.TrimSpace(doc.Find("textarea#message").Text()))

	stats, err := ts.store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Submissions["success"])
}

func TestContactRelaySendsBothMessages(t *testing.T) {
	relay := &recordingRelay{}
	ts := newTestServer(t, relay, false)

	rec := ts.do(t, postContact("Ada", "ada@example.com", "use <div> when a<b"))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, relay.sent, 2)
	assert.Equal(t, contact.KindNotify, relay.sent[0].Kind)
	assert.Equal(t, "template_notify", relay.sent[0].Template)
	assert.Equal(t, "ada@example.com messaged you - use <div> when a<b", relay.sent[0].Params["message"])
	assert.Equal(t, contact.KindAutoReply, relay.sent[1].Kind)
	assert.Equal(t, "ada@example.com", relay.sent[1].Params["to_email"])
}

func TestContactRelayFailureKeepsForm(t *testing.T) {
	relay := &recordingRelay{failOn: contact.KindAutoReply}
	ts := newTestServer(t, relay, true)

	rec := ts.do(t, postContact("Ada", "ada@example.com", "Hello there"))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseHTML(t, rec.Body.Bytes())
	assert.Equal(t, contact.ErrorMessage, strings.TrimSpace(doc.Find(".status.error").Text()))
	name, _ := doc.Find("input#name").Attr("value")
	assert.Equal(t, "Ada", name)
	assert.Equal(t, "Hello there", doc.Find("textarea#message").Text())

	stats, err := ts.store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Submissions["error"])
}

func TestContactMissingFields(t *testing.T) {
	relay := &recordingRelay{}
	ts := newTestServer(t, relay, false)

	rec := ts.do(t, postContact("Ada", "", "Hello there"))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseHTML(t, rec.Body.Bytes())
	assert.Equal(t, 1, doc.Find(".status.error").Length())
	name, _ := doc.Find("input#name").Attr("value")
	assert.Equal(t, "Ada", name)
	assert.Empty(t, relay.sent)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil, false)

	rec := ts.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestVisitorTracking(t *testing.T) {
	ts := newTestServer(t, nil, true)

	ts.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	ts.do(t, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	ts.do(t, httptest.NewRequest(http.MethodGet, "/privacy", nil))

	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	ts.do(t, dnt)

	stats, err := ts.store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVisitors)
	require.Len(t, stats.RecentVisitors, 1)
	assert.Equal(t, "/", stats.RecentVisitors[0].Path)
	assert.NotContains(t, stats.RecentVisitors[0].HashedIP, "192.0.2.1")
}

func TestAdminRequiresLogin(t *testing.T) {
	ts := newTestServer(t, nil, true)

	rec := ts.do(t, httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = ts.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginGrantsStats(t *testing.T) {
	ts := newTestServer(t, nil, true)

	form := url.Values{"username": {"admin"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := ts.do(t, req)
	require.Equal(t, http.StatusFound, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	statsReq := httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	for _, c := range cookies {
		statsReq.AddCookie(c)
	}
	rec = ts.do(t, statsReq)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_visitors"`)
}

func TestAdminDisabledWithoutStore(t *testing.T) {
	ts := newTestServer(t, nil, false)

	rec := ts.do(t, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
