package behavior

import (
	"golang.org/x/net/html"

	"github.com/vulchevd/web.io/internal/dom"
)

const (
	lazyImagesKey = "behavior.lazy-images"
	deferredSrc   = "data-src"
)

// LazyImages defers img[data-src] until the image scrolls into view. Without
// viewport observation every image loads immediately.
type LazyImages struct{}

func (LazyImages) Attach(doc *dom.Document) error {
	if !doc.Once(lazyImagesKey) {
		return nil
	}
	images := doc.Find("img[" + deferredSrc + "]").Nodes
	if !doc.SupportsIntersectionObserver() {
		for _, img := range images {
			promote(img)
		}
		return nil
	}
	for _, img := range images {
		doc.Observe(img, func() {
			promote(img)
			doc.Unobserve(img)
		})
	}
	return nil
}

func promote(img *html.Node) {
	src, ok := dom.Attr(img, deferredSrc)
	if !ok {
		return
	}
	dom.SetAttr(img, "src", src)
	dom.RemoveAttr(img, deferredSrc)
}
