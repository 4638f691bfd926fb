package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/vulchevd/web.io/internal/dom"
	"github.com/vulchevd/web.io/internal/i18n"
	"github.com/vulchevd/web.io/internal/lang"
	"github.com/vulchevd/web.io/internal/nav"
	"github.com/vulchevd/web.io/internal/testutil"
)

func newRenderer(t *testing.T, opts nav.Options) *Renderer {
	t.Helper()
	b, err := i18n.LoadDefault()
	require.NoError(t, err)
	r, err := New(Options{
		Bundle:   b,
		Resolver: nav.NewResolver(opts),
		Now:      func() time.Time { return time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return r
}

func mount(t *testing.T, r *Renderer, markup string, loc nav.Location) *dom.Document {
	t.Helper()
	d, err := dom.ParseString(markup, loc)
	require.NoError(t, err)
	require.NoError(t, r.Mount(d))
	return d
}

const withPlaceholders = `<!doctype html><html><head><title>Parking</title></head><body>
<div id="header-placeholder"></div>
<main><h1>Parking</h1></main>
<div id="footer-placeholder"></div>
</body></html>`

func TestMountReplacesPlaceholders(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nav.Options{})
	d := mount(t, r, withPlaceholders, nav.Location{Path: "/bg/parking.html", Mode: lang.WebRoot})
	doc := testutil.ParseHTML(t, []byte(d.String()))

	require.Zero(t, doc.Find("#header-placeholder, #footer-placeholder").Length())
	require.Equal(t, 1, doc.Find("header.site-header").Length())
	require.Equal(t, 1, doc.Find("footer.site-footer").Length())
	require.Equal(t, "bg", doc.Find("html").AttrOr("lang", ""))

	require.Equal(t,
		[]string{"/bg/", "/bg/apartments.html", "/bg/parking.html", "/bg/about.html", "/bg/contact.html"},
		testutil.Hrefs(doc, ".main-nav a"))
	active := doc.Find(".main-nav a.active")
	require.Equal(t, 1, active.Length())
	require.Equal(t, "Паркинг", active.Text())

	require.Equal(t,
		[]string{"/bg/parking.html", "/ru/parking.html", "/parking.html"},
		testutil.Hrefs(doc, ".language-switcher a"))
	require.Equal(t, "bg", doc.Find(".language-switcher a.active").AttrOr("hreflang", ""))
	require.Equal(t, "../images/bg-flag.png", doc.Find(".language-switcher img").First().AttrOr("src", ""))

	require.Equal(t,
		[]string{"/bg/privacy-policy.html", "/bg/terms-of-service.html", "/bg/cookie-policy.html"},
		testutil.Hrefs(doc, ".legal-links a"))
	require.Contains(t, doc.Find(".copyright").Text(), "2031 Briliant Properties. Всички права запазени.")
	require.Contains(t, doc.Find(".contact-info").Text(), "Изпълнителен директор: Румен Стефанов")

	require.Equal(t, 4, doc.Find(`head link[rel="alternate"]`).Length())
	require.Equal(t, 1, doc.Find(`head script[type="application/ld+json"]`).Length())
	require.True(t, d.Ready())
}

func TestMountReplacesExistingElements(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nav.Options{})
	markup := `<html><head></head><body><header>old</header><p>x</p><footer>old</footer></body></html>`
	d := mount(t, r, markup, nav.Location{Path: "/about.html", Mode: lang.WebRoot})
	doc := testutil.ParseHTML(t, []byte(d.String()))

	require.Equal(t, 1, doc.Find("header").Length())
	require.Equal(t, 1, doc.Find("footer").Length())
	require.NotContains(t, doc.Find("header").Text(), "old")
	require.Equal(t, "About Us", doc.Find(".main-nav a.active").Text())
}

func TestMountFallsBackToBodyEdges(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nav.Options{})
	d := mount(t, r, `<html><body><p id="content">x</p></body></html>`, nav.Location{Path: "/", Mode: lang.WebRoot})

	body := d.Body()
	first := body.FirstChild
	for first != nil && first.Type != html.ElementNode {
		first = first.NextSibling
	}
	require.Equal(t, "header", first.Data)
	last := body.LastChild
	for last != nil && last.Type != html.ElementNode {
		last = last.PrevSibling
	}
	require.Equal(t, "footer", last.Data)
	require.Equal(t, "Home", d.Find(".main-nav a.active").Text())
}

func TestMountIsIdempotent(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nav.Options{})
	d := mount(t, r, withPlaceholders, nav.Location{Path: "/contact.html", Mode: lang.WebRoot})
	toggle := d.First(".menu-toggle")
	require.NoError(t, r.Mount(d))

	require.Equal(t, 1, d.Find("header").Length())
	require.Equal(t, 1, d.Find("footer").Length())
	require.Equal(t, 1, d.ListenerCount(toggle, "click"))
	require.Equal(t, 1, d.ListenerCount(nil, "click"))

	d.Click(".menu-toggle")
	require.True(t, dom.HasClass(d.First(".main-nav"), "active"))
}

func TestMountRunsReadyHooksAfterRendering(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nav.Options{})
	d, err := dom.ParseString(withPlaceholders, nav.Location{Path: "/apartments.html", Mode: lang.WebRoot})
	require.NoError(t, err)

	var activeAtReady string
	d.OnReady(func() { activeAtReady = d.Find(".main-nav a.active").Text() })
	require.NoError(t, r.Mount(d))
	require.Equal(t, "Apartments", activeAtReady)
}

func TestMountFileSystemMode(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nav.Options{})
	d := mount(t, r, withPlaceholders, nav.Location{Path: `C:\site\ru\about.html`, Mode: lang.FileSystem})
	doc := testutil.ParseHTML(t, []byte(d.String()))

	require.Equal(t,
		[]string{"index.html", "apartments.html", "parking.html", "about.html", "contact.html"},
		testutil.Hrefs(doc, ".main-nav a"))
	require.Equal(t,
		[]string{"../bg/about.html", "about.html", "../about.html"},
		testutil.Hrefs(doc, ".language-switcher a"))
	require.Equal(t, "ru", doc.Find("html").AttrOr("lang", ""))
	require.Zero(t, doc.Find(`head link[rel="alternate"]`).Length())
}

func TestHomeFilenameStyle(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nav.Options{HomeStyle: nav.HomeFilename})
	header, err := r.RenderHeader(nav.Location{Path: "/ru/index.html", Mode: lang.WebRoot})
	require.NoError(t, err)

	d, err := dom.ParseString(`<html><body></body></html>`, nav.Location{})
	require.NoError(t, err)
	dom.Append(d.Body(), header)
	require.Equal(t, "/ru/index.html", d.Find("a.logo").AttrOr("href", ""))
	require.Equal(t, "/ru/index.html", d.Find(".main-nav a.active").AttrOr("href", ""))
}

func TestNewRequiresBundle(t *testing.T) {
	t.Parallel()

	_, err := New(Options{})
	require.Error(t, err)
}

func TestMountRetriesAfterFailure(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nav.Options{})
	root := dom.Element("html")
	d := dom.New(root, nav.Location{Path: "/about.html", Mode: lang.WebRoot})
	require.Error(t, r.Mount(d))
	require.False(t, d.Ready())

	dom.Append(root, dom.Element("body"))
	require.NoError(t, r.Mount(d))
	require.True(t, d.Ready())
	require.Equal(t, 1, d.Find("header.site-header").Length())
	require.Equal(t, 1, d.Find("footer.site-footer").Length())
}

func TestSwitcherFlagsUseLanguageNames(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nav.Options{})
	d := mount(t, r, withPlaceholders, nav.Location{Path: "/ru/parking.html", Mode: lang.WebRoot})
	require.Equal(t, "Bulgarian", d.Find(`.language-switcher a[hreflang="bg"] img`).AttrOr("alt", ""))
	require.Equal(t, "English", d.Find(`.language-switcher a[hreflang="en"] img`).AttrOr("alt", ""))
}
