package nav

import (
	"path"
	"strings"

	"github.com/vulchevd/web.io/internal/lang"
)

// PageID is the semantic name of a site page.
type PageID string

const (
	Home           PageID = "home"
	Apartments     PageID = "apartments"
	Parking        PageID = "parking"
	About          PageID = "about"
	Contact        PageID = "contact"
	PrivacyPolicy  PageID = "privacy-policy"
	TermsOfService PageID = "terms-of-service"
	CookiePolicy   PageID = "cookie-policy"
)

const (
	pageSuffix = ".html"
	homeFile   = "index.html"
)

var pages = map[PageID]string{
	Home:           homeFile,
	Apartments:     "apartments.html",
	Parking:        "parking.html",
	About:          "about.html",
	Contact:        "contact.html",
	PrivacyPolicy:  "privacy-policy.html",
	TermsOfService: "terms-of-service.html",
	CookiePolicy:   "cookie-policy.html",
}

// Pages returns every known page identifier.
func Pages() []PageID {
	return []PageID{Home, Apartments, Parking, About, Contact, PrivacyPolicy, TermsOfService, CookiePolicy}
}

// Lookup maps a filename back to its page identifier.
func Lookup(filename string) (PageID, bool) {
	file := Filename(filename)
	for id, f := range pages {
		if f == file {
			return id, true
		}
	}
	return "", false
}

// Filename normalizes a page identifier or filename to its canonical file:
// directory prefixes are dropped, ".html" is appended when missing and an
// empty name means the home page.
func Filename(page string) string {
	name := lastSegment(strings.TrimSpace(page))
	if f, ok := pages[PageID(name)]; ok {
		return f
	}
	if name == "" {
		return homeFile
	}
	if !strings.HasSuffix(name, pageSuffix) {
		name += pageSuffix
	}
	return name
}

func lastSegment(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i != -1 {
		return p[i+1:]
	}
	return p
}

// Location is the document location links are resolved against.
type Location struct {
	Path string
	Mode lang.Mode
}

// Lang is the language detected from the location path.
func (l Location) Lang() lang.Code { return lang.Detect(l.Path) }

// Filename returns the last path segment. A bare language segment such as
// "/bg" counts as a directory, so the result is empty.
func (l Location) Filename() string {
	name := lastSegment(l.Path)
	if c, ok := lang.Parse(name); ok && !c.IsDefault() && name == string(c) {
		return ""
	}
	return name
}

// HomeStyle selects how web-root links to the home page are written.
type HomeStyle int

const (
	// HomeTrailingSlash writes "/" and "/bg/".
	HomeTrailingSlash HomeStyle = iota
	// HomeFilename writes "/index.html" and "/bg/index.html".
	HomeFilename
)

// ParseHomeStyle accepts "slash" or "filename".
func ParseHomeStyle(s string) (HomeStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "slash", "trailing-slash":
		return HomeTrailingSlash, true
	case "filename", "file":
		return HomeFilename, true
	default:
		return HomeTrailingSlash, false
	}
}

// Options configures a Resolver.
type Options struct {
	HomeStyle HomeStyle
}

// Resolver computes page and asset links for both deployment modes.
type Resolver struct {
	opts Options
}

// NewResolver returns a resolver with the given options.
func NewResolver(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

// PageURL returns the link to page in the target language as seen from loc.
// page may be a PageID or a filename. Unsupported targets behave like the
// default language.
//
// In filesystem mode every language other than the default lives in a
// sibling directory of the site root. Hops between two such directories go
// through "../<target>/" and are only correct for that layout.
func (r *Resolver) PageURL(target lang.Code, page string, loc Location) string {
	target = lang.Normalize(target)
	file := Filename(page)

	if loc.Mode == lang.FileSystem {
		current := loc.Lang()
		switch {
		case current == target:
			return file
		case current.IsDefault():
			return string(target) + "/" + file
		case target.IsDefault():
			return "../" + file
		default:
			return "../" + string(target) + "/" + file
		}
	}

	prefix := "/"
	if !target.IsDefault() {
		prefix = "/" + string(target) + "/"
	}
	if file == homeFile && r.homeStyle() == HomeTrailingSlash {
		return prefix
	}
	return prefix + file
}

// ImagePath returns the path of an image under the site's images directory.
// Its depth depends only on the current language, in both modes.
func (r *Resolver) ImagePath(name string, loc Location) string {
	name = strings.TrimLeft(name, `/\`)
	if loc.Lang().IsDefault() {
		return "images/" + name
	}
	return "../images/" + name
}

func (r *Resolver) homeStyle() HomeStyle {
	if r == nil {
		return HomeTrailingSlash
	}
	return r.opts.HomeStyle
}

// Navigate applies href to loc the way a browser follows a link. Absolute
// hrefs replace the path; relative hrefs are joined to the current directory.
func Navigate(loc Location, href string) Location {
	if href == "" {
		return loc
	}
	current := strings.ReplaceAll(loc.Path, `\`, "/")
	var next string
	if strings.HasPrefix(href, "/") {
		next = path.Clean(href)
	} else {
		dir := "/"
		if i := strings.LastIndex(current, "/"); i != -1 {
			dir = current[:i+1]
		}
		next = path.Join(dir, href)
	}
	if strings.HasSuffix(href, "/") && next != "/" {
		next += "/"
	}
	return Location{Path: next, Mode: loc.Mode}
}
