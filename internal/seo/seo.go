// Package seo builds the search-engine metadata injected into page heads.
package seo

import (
	"github.com/vulchevd/web.io/internal/lang"
	"github.com/vulchevd/web.io/internal/nav"
)

// XDefault is the hreflang value for the language-neutral alternate.
const XDefault = "x-default"

// Alternate is one <link rel="alternate" hreflang> entry.
type Alternate struct {
	HrefLang string
	Href     string
}

// Meta describes the head metadata of a page.
type Meta struct {
	Title       string
	Description string
	Lang        lang.Code
	Alternates  []Alternate
}

// Alternates lists the current page in every supported language, followed by
// the x-default entry pointing at the default language. Relative filesystem
// links are meaningless to crawlers, so only web-root locations get entries.
func Alternates(r *nav.Resolver, loc nav.Location) []Alternate {
	if loc.Mode != lang.WebRoot {
		return nil
	}
	page := loc.Filename()
	out := make([]Alternate, 0, len(lang.All())+1)
	for _, c := range lang.All() {
		out = append(out, Alternate{
			HrefLang: c.Tag().String(),
			Href:     r.PageURL(c, page, loc),
		})
	}
	out = append(out, Alternate{
		HrefLang: XDefault,
		Href:     r.PageURL(lang.Default, page, loc),
	})
	return out
}
