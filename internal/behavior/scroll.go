package behavior

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/vulchevd/web.io/internal/dom"
)

// DefaultHeaderOffset compensates for the fixed header when scrolling.
const DefaultHeaderOffset = 80

const smoothScrollKey = "behavior.smooth-scroll"

// SmoothScroll turns in-page anchor jumps into smooth scrolls that stop
// HeaderOffset above the target. Nil means DefaultHeaderOffset.
type SmoothScroll struct {
	HeaderOffset *int
}

// Offset is a helper for SmoothScroll.HeaderOffset.
func Offset(px int) *int { return &px }

func (s SmoothScroll) Attach(doc *dom.Document) error {
	if !doc.Once(smoothScrollKey) {
		return nil
	}
	offset := DefaultHeaderOffset
	if s.HeaderOffset != nil {
		offset = *s.HeaderOffset
	}
	for _, link := range doc.Find(`a[href^="#"]`).Nodes {
		doc.AddEventListener(link, "click", func(e *dom.Event) {
			e.PreventDefault()
			href, _ := dom.Attr(link, "href")
			if href == "#" {
				return
			}
			target := findAnchor(doc, strings.TrimPrefix(href, "#"))
			if target == nil {
				return
			}
			doc.ScrollTo(doc.OffsetTop(target)-offset, true)
		})
	}
	return nil
}

func findAnchor(doc *dom.Document, id string) *html.Node {
	if id == "" {
		return nil
	}
	for _, n := range doc.Find("[id]").Nodes {
		if v, _ := dom.Attr(n, "id"); v == id {
			return n
		}
	}
	return nil
}
