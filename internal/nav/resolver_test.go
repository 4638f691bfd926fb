package nav

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vulchevd/web.io/internal/lang"
)

// locations returns a document location for every language in mode.
func locations(mode lang.Mode, file string) map[lang.Code]Location {
	root := "/"
	if mode == lang.FileSystem {
		root = "/home/site/"
	}
	out := map[lang.Code]Location{}
	for _, c := range lang.All() {
		p := root + file
		if !c.IsDefault() {
			p = root + string(c) + "/" + file
		}
		out[c] = Location{Path: p, Mode: mode}
	}
	return out
}

func TestFilename(t *testing.T) {
	t.Parallel()

	require.Equal(t, "index.html", Filename(""))
	require.Equal(t, "index.html", Filename("home"))
	require.Equal(t, "contact.html", Filename("contact"))
	require.Equal(t, "contact.html", Filename("/bg/contact.html"))
	require.Equal(t, "about.html", Filename(`C:\site\ru\about`))
	require.Equal(t, "privacy-policy.html", Filename(string(PrivacyPolicy)))
	require.Equal(t, "index.html", Filename("/bg/"))
}

func TestPageURLWebRootHome(t *testing.T) {
	t.Parallel()

	r := NewResolver(Options{})
	for _, from := range locations(lang.WebRoot, "about.html") {
		require.Equal(t, "/", r.PageURL(lang.EN, string(Home), from))
		require.Equal(t, "/bg/", r.PageURL(lang.BG, string(Home), from))
		require.Equal(t, "/ru/", r.PageURL(lang.RU, "index.html", from))
	}

	fileStyle := NewResolver(Options{HomeStyle: HomeFilename})
	from := Location{Path: "/bg/contact.html", Mode: lang.WebRoot}
	require.Equal(t, "/index.html", fileStyle.PageURL(lang.EN, "", from))
	require.Equal(t, "/ru/index.html", fileStyle.PageURL(lang.RU, "home", from))
}

func TestPageURLWebRootPages(t *testing.T) {
	t.Parallel()

	r := NewResolver(Options{})
	from := Location{Path: "/ru/parking.html", Mode: lang.WebRoot}
	require.Equal(t, "/contact.html", r.PageURL(lang.EN, "contact", from))
	require.Equal(t, "/bg/contact.html", r.PageURL(lang.BG, "contact.html", from))
	require.Equal(t, "/ru/parking.html", r.PageURL(lang.RU, from.Filename(), from))
	// unsupported targets fall back to the default language
	require.Equal(t, "/about.html", r.PageURL("de", "about", from))
}

func TestPageURLFileSystem(t *testing.T) {
	t.Parallel()

	r := NewResolver(Options{})
	locs := locations(lang.FileSystem, "contact.html")

	cases := []struct {
		from   lang.Code
		target lang.Code
		want   string
	}{
		{lang.EN, lang.EN, "contact.html"},
		{lang.EN, lang.BG, "bg/contact.html"},
		{lang.EN, lang.RU, "ru/contact.html"},
		{lang.BG, lang.BG, "contact.html"},
		{lang.BG, lang.EN, "../contact.html"},
		{lang.BG, lang.RU, "../ru/contact.html"},
		{lang.RU, lang.EN, "../contact.html"},
		{lang.RU, lang.BG, "../bg/contact.html"},
	}
	for _, tc := range cases {
		got := r.PageURL(tc.target, "contact", locs[tc.from])
		require.Equal(t, tc.want, got, "%s -> %s", tc.from, tc.target)
	}

	// the home page follows the same relative rules
	require.Equal(t, "index.html", r.PageURL(lang.BG, "home", locs[lang.BG]))
	require.Equal(t, "../index.html", r.PageURL(lang.EN, "home", locs[lang.BG]))
}

func TestPageURLRoundTrip(t *testing.T) {
	t.Parallel()

	for _, style := range []HomeStyle{HomeTrailingSlash, HomeFilename} {
		r := NewResolver(Options{HomeStyle: style})
		for _, mode := range []lang.Mode{lang.WebRoot, lang.FileSystem} {
			for _, page := range Pages() {
				for from, loc := range locations(mode, Filename(string(page))) {
					for _, target := range lang.All() {
						name := fmt.Sprintf("%s/%s/%s->%s", mode, page, from, target)
						href := r.PageURL(target, string(page), loc)
						next := Navigate(loc, href)
						require.Equal(t, target, lang.Detect(next.Path), name)
						require.Equal(t, Filename(string(page)), Filename(next.Filename()), name)
					}
				}
			}
		}
	}
}

func TestImagePath(t *testing.T) {
	t.Parallel()

	r := NewResolver(Options{})
	for _, mode := range []lang.Mode{lang.WebRoot, lang.FileSystem} {
		locs := locations(mode, "index.html")
		require.Equal(t, "images/bg-flag.png", r.ImagePath("bg-flag.png", locs[lang.EN]))
		require.Equal(t, "../images/bg-flag.png", r.ImagePath("bg-flag.png", locs[lang.BG]))
		require.Equal(t, "../images/uk-flag.png", r.ImagePath("/uk-flag.png", locs[lang.RU]))
	}
}

func TestNavigate(t *testing.T) {
	t.Parallel()

	from := Location{Path: "/home/site/bg/contact.html", Mode: lang.FileSystem}
	require.Equal(t, "/home/site/ru/contact.html", Navigate(from, "../ru/contact.html").Path)
	require.Equal(t, "/home/site/bg/about.html", Navigate(from, "about.html").Path)

	web := Location{Path: "/bg/", Mode: lang.WebRoot}
	require.Equal(t, "/ru/", Navigate(web, "/ru/").Path)
	require.Equal(t, "/", Navigate(web, "/").Path)
	require.Equal(t, "/images/x.png", Navigate(web, "../images/x.png").Path)

	win := Location{Path: `C:\site\ru\index.html`, Mode: lang.FileSystem}
	require.Equal(t, "C:/site/bg/index.html", Navigate(win, "../bg/index.html").Path)
}

func TestLocationFilename(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Location{Path: "/bg"}.Filename())
	require.Equal(t, "", Location{Path: "/"}.Filename())
	require.Equal(t, "about.html", Location{Path: "/ru/about.html"}.Filename())

	id, ok := Lookup("/ru/about.html")
	require.True(t, ok)
	require.Equal(t, About, id)
	_, ok = Lookup("gallery.html")
	require.False(t, ok)
}
