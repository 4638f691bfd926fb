package nav

import (
	"github.com/vulchevd/web.io/internal/lang"
)

// Item represents a navigation entry.
type Item struct {
	Page     PageID
	LabelKey string // i18n key, e.g. "nav.home"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Page     PageID
	Href     string
	LabelKey string
	Active   bool
}

// Main is the primary navigation shown in the header and the footer quick links.
var Main = []Item{
	{Page: Home, LabelKey: "nav.home"},
	{Page: Apartments, LabelKey: "nav.apartments"},
	{Page: Parking, LabelKey: "nav.parking"},
	{Page: About, LabelKey: "nav.about"},
	{Page: Contact, LabelKey: "nav.contact"},
}

// Legal lists the policy pages linked from the footer.
var Legal = []Item{
	{Page: PrivacyPolicy, LabelKey: "legal.privacy"},
	{Page: TermsOfService, LabelKey: "legal.terms"},
	{Page: CookiePolicy, LabelKey: "legal.cookies"},
}

// Build resolves items for the language of loc and marks the entry for the
// current page as active.
func Build(items []Item, loc Location, r *Resolver) []RenderedItem {
	current := loc.Lang()
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		href := r.PageURL(current, string(it.Page), loc)
		out = append(out, RenderedItem{
			Page:     it.Page,
			Href:     href,
			LabelKey: it.LabelKey,
			Active:   IsActive(href, loc),
		})
	}
	return out
}

// IsActive reports whether href points at the page loc is showing. Only
// filenames are compared; an empty filename stands for the home page.
func IsActive(href string, loc Location) bool {
	return Filename(lastSegment(href)) == Filename(loc.Filename())
}

// SwitcherEntry is one flag in the language switcher.
type SwitcherEntry struct {
	Lang   lang.Code
	Href   string
	Flag   string
	AltKey string
	Active bool
}

var flags = map[lang.Code]string{
	lang.BG: "bg-flag.png",
	lang.RU: "ru-flag.png",
	lang.EN: "uk-flag.png",
}

// switcherOrder is the display order of the flags.
var switcherOrder = []lang.Code{lang.BG, lang.RU, lang.EN}

// Switcher links the current page to its counterpart in every language.
func Switcher(loc Location, r *Resolver) []SwitcherEntry {
	current := loc.Lang()
	page := loc.Filename()
	out := make([]SwitcherEntry, 0, len(switcherOrder))
	for _, c := range switcherOrder {
		out = append(out, SwitcherEntry{
			Lang:   c,
			Href:   r.PageURL(c, page, loc),
			Flag:   r.ImagePath(flags[c], loc),
			AltKey: "language." + string(c),
			Active: c == current,
		})
	}
	return out
}
