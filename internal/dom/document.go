// Package dom is the page runtime the site components run against: an HTML
// node tree with event dispatch, timers and a viewport.
//
// Everything runs on the caller's goroutine. Handlers execute synchronously
// inside Dispatch and timers fire only inside Advance, which mirrors the
// single-threaded event loop of a browser page.
package dom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vulchevd/web.io/internal/nav"
)

// Document is one loaded page.
type Document struct {
	root *html.Node
	sel  *goquery.Document
	loc  nav.Location
	ctx  context.Context

	listeners    map[*html.Node]map[string][]Handler
	docListeners map[string][]Handler

	timers  []*timer
	nextID  int
	elapsed int64 // nanoseconds since load

	observer bool
	observed map[*html.Node]func()
	scroll   Scroll

	once    map[string]struct{}
	ready   bool
	onReady []func()
}

// Option customises a Document.
type Option func(*Document)

// WithContext sets the context handed to handlers that touch external stores.
func WithContext(ctx context.Context) Option {
	return func(d *Document) {
		if ctx != nil {
			d.ctx = ctx
		}
	}
}

// WithIntersectionObserver toggles viewport observation support.
func WithIntersectionObserver(supported bool) Option {
	return func(d *Document) { d.observer = supported }
}

// Parse reads a full HTML document.
func Parse(r io.Reader, loc nav.Location, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return New(root, loc, opts...), nil
}

// ParseString is Parse for an in-memory document.
func ParseString(s string, loc nav.Location, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), loc, opts...)
}

// New wraps an already parsed node tree.
func New(root *html.Node, loc nav.Location, opts ...Option) *Document {
	d := &Document{
		root:         root,
		sel:          goquery.NewDocumentFromNode(root),
		loc:          loc,
		ctx:          context.Background(),
		listeners:    map[*html.Node]map[string][]Handler{},
		docListeners: map[string][]Handler{},
		observer:     true,
		observed:     map[*html.Node]func(){},
		once:         map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Location returns where the document was loaded from.
func (d *Document) Location() nav.Location { return d.loc }

// Context returns the document's context.
func (d *Document) Context() context.Context { return d.ctx }

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Find runs a CSS selector against the current tree.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.sel.Find(selector)
}

// First returns the first node matching selector, or nil.
func (d *Document) First(selector string) *html.Node {
	s := d.sel.Find(selector).First()
	if s.Length() == 0 {
		return nil
	}
	return s.Get(0)
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *html.Node {
	return d.First("#" + id)
}

// HTML returns the <html> element.
func (d *Document) HTML() *html.Node { return d.element(atom.Html) }

// Head returns the <head> element.
func (d *Document) Head() *html.Node { return d.element(atom.Head) }

// Body returns the <body> element.
func (d *Document) Body() *html.Node { return d.element(atom.Body) }

func (d *Document) element(a atom.Atom) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

// Once reports whether key is being claimed for the first time on this
// document. Components use it as their "already mounted" flag.
func (d *Document) Once(key string) bool {
	if _, ok := d.once[key]; ok {
		return false
	}
	d.once[key] = struct{}{}
	return true
}

// OnReady registers fn to run once the page has finished rendering. After
// MarkReady it runs immediately.
func (d *Document) OnReady(fn func()) {
	if fn == nil {
		return
	}
	if d.ready {
		fn()
		return
	}
	d.onReady = append(d.onReady, fn)
}

// MarkReady signals that rendering is complete and runs pending hooks in
// registration order. Later calls are no-ops.
func (d *Document) MarkReady() {
	if d.ready {
		return
	}
	d.ready = true
	hooks := d.onReady
	d.onReady = nil
	for _, fn := range hooks {
		fn()
	}
}

// Ready reports whether MarkReady has run.
func (d *Document) Ready() bool { return d.ready }

// Render serializes the document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the serialized document.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}
