// Package section keeps track of which page section is "in view" while the
// reader scrolls, and turns navigation clicks into scroll requests.
//
// Offsets are plain integers in whatever unit the rendition scrolls in:
// pixels for the web page, rows for the terminal viewport. The tracker never
// reads a clock or a document on its own; callers feed it scroll events and
// a Document that reports where each section starts.
package section

// DefaultLookahead is added to the scroll offset before resolving the active
// section, so a section is highlighted slightly before it reaches the top.
const DefaultLookahead = 100

// DefaultScrollThreshold is the offset past which the page counts as scrolled.
const DefaultScrollThreshold = 50

// Document reports the top offset of a section element. ok is false when no
// element with that id is currently present.
type Document interface {
	Top(id string) (top int, ok bool)
}

// Scroller performs a smooth scroll that brings the given top offset into view.
type Scroller interface {
	ScrollTo(id string, top int)
}

// Tracker owns the active-section value for one view.
type Tracker struct {
	ids             []string
	active          string
	lookahead       int
	scrollThreshold int
	scrolled        bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLookahead overrides DefaultLookahead.
func WithLookahead(n int) Option {
	return func(t *Tracker) { t.lookahead = n }
}

// WithScrollThreshold overrides DefaultScrollThreshold.
func WithScrollThreshold(n int) Option {
	return func(t *Tracker) { t.scrollThreshold = n }
}

// NewTracker creates a tracker over the ordered section ids. The first id is
// the initial active section.
func NewTracker(ids []string, opts ...Option) *Tracker {
	t := &Tracker{
		ids:             append([]string(nil), ids...),
		lookahead:       DefaultLookahead,
		scrollThreshold: DefaultScrollThreshold,
	}
	if len(ids) > 0 {
		t.active = ids[0]
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Active returns the currently active section id.
func (t *Tracker) Active() string {
	return t.active
}

// Scrolled reports whether the last observed offset passed the scroll threshold.
func (t *Tracker) Scrolled() bool {
	return t.scrolled
}

// Observe handles one scroll event at the given vertical offset. The active
// section becomes the last section whose top is at or above
// offset+lookahead. When no section qualifies the previous value is kept.
func (t *Tracker) Observe(offset int, doc Document) {
	t.scrolled = offset > t.scrollThreshold

	position := offset + t.lookahead
	for i := len(t.ids) - 1; i >= 0; i-- {
		top, ok := doc.Top(t.ids[i])
		if !ok {
			continue
		}
		if top <= position {
			t.active = t.ids[i]
			return
		}
	}
}

// ScrollTo asks the scroller to bring the section into view. Unknown ids are
// ignored. It returns whether a scroll was requested.
func (t *Tracker) ScrollTo(id string, doc Document, scroller Scroller) bool {
	top, ok := doc.Top(id)
	if !ok {
		return false
	}
	scroller.ScrollTo(id, top)
	return true
}

// Tops is a Document backed by a fixed map of section tops.
type Tops map[string]int

// Top implements Document.
func (m Tops) Top(id string) (int, bool) {
	top, ok := m[id]
	return top, ok
}
