package site

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/vulchevd/web.io/internal/behavior"
	"github.com/vulchevd/web.io/internal/dom"
	"github.com/vulchevd/web.io/internal/seo"
)

const (
	mountKey          = "site.mount"
	headerPlaceholder = "header-placeholder"
	footerPlaceholder = "footer-placeholder"
)

// Mount puts the header and footer into doc, localizes the head and attaches
// the menu toggle. Rendering is complete when Mount returns, at which point
// the document's ready hooks run. Calling Mount again after a successful
// mount does nothing; a failed mount leaves the document unclaimed.
func (r *Renderer) Mount(doc *dom.Document) error {
	loc := doc.Location()

	header, err := r.RenderHeader(loc)
	if err != nil {
		return err
	}
	footer, err := r.RenderFooter(loc)
	if err != nil {
		return err
	}

	body := doc.Body()
	if body == nil {
		return fmt.Errorf("site: document has no body")
	}
	if !doc.Once(mountKey) {
		return nil
	}
	place(doc, header, headerPlaceholder, "header", func(n *html.Node) { dom.Prepend(body, n) })
	place(doc, footer, footerPlaceholder, "footer", func(n *html.Node) { dom.Append(body, n) })

	if root := doc.HTML(); root != nil {
		dom.SetAttr(root, "lang", loc.Lang().Tag().String())
	}
	r.decorateHead(doc)

	if err := (behavior.NavToggle{}).Attach(doc); err != nil {
		return err
	}
	doc.MarkReady()
	return nil
}

// place swaps n in for the placeholder, or else for the first element named
// tag, or else hands it to fallback.
func place(doc *dom.Document, n *html.Node, placeholder, tag string, fallback func(*html.Node)) {
	if old := doc.ByID(placeholder); old != nil {
		dom.ReplaceWith(old, n)
		return
	}
	if old := doc.First(tag); old != nil {
		dom.ReplaceWith(old, n)
		return
	}
	fallback(n)
}

func (r *Renderer) decorateHead(doc *dom.Document) {
	head := doc.Head()
	if head == nil {
		return
	}
	loc := doc.Location()

	for _, n := range doc.Find(`head link[rel="alternate"][hreflang]`).Nodes {
		dom.Remove(n)
	}
	for _, alt := range seo.Alternates(r.resolver, loc) {
		dom.Append(head, dom.Element("link", "rel", "alternate", "hreflang", alt.HrefLang, "href", alt.Href))
	}

	labels := r.bundle.Labels(loc.Lang())
	org := seo.Organization(r.company.Name, r.company.Email, labels.Contact.Address, []seo.ContactPoint{
		{Name: r.company.CEO.Name, Role: role(labels.Contact.CEOTitle), Telephone: r.company.CEO.Phone},
		{Name: r.company.GM.Name, Role: role(labels.Contact.GMTitle), Telephone: r.company.GM.Phone},
	})
	script := dom.Element("script", "type", "application/ld+json")
	script.AppendChild(dom.Text(seo.JSON(org)))
	dom.Append(head, script)
}

// role strips the trailing colon the footer titles carry.
func role(title string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(title), ":"))
}
