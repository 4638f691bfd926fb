package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Scroll records the last window scroll request.
type Scroll struct {
	Top    int
	Smooth bool
}

// ScrollTo scrolls the window.
func (d *Document) ScrollTo(top int, smooth bool) {
	d.scroll = Scroll{Top: top, Smooth: smooth}
}

// Scroll returns the current scroll position.
func (d *Document) Scroll() Scroll { return d.scroll }

// OffsetTop measures n's distance from the top of the page.
func (d *Document) OffsetTop(n *html.Node) int { return offsetTop(n) }

func offsetTop(n *html.Node) int {
	v, ok := Attr(n, "data-offset-top")
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return i
}

// SupportsIntersectionObserver reports whether viewport observation exists.
func (d *Document) SupportsIntersectionObserver() bool { return d.observer }

// Observe calls fn whenever n enters the viewport, until Unobserve.
func (d *Document) Observe(n *html.Node, fn func()) {
	if n == nil || fn == nil || !d.observer {
		return
	}
	d.observed[n] = fn
}

// Unobserve stops watching n.
func (d *Document) Unobserve(n *html.Node) { delete(d.observed, n) }

// Observing reports whether n is being watched.
func (d *Document) Observing(n *html.Node) bool {
	_, ok := d.observed[n]
	return ok
}

// Intersect reports that n entered the viewport.
func (d *Document) Intersect(n *html.Node) {
	if fn, ok := d.observed[n]; ok {
		fn()
	}
}
