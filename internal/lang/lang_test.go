package lang

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want Code
	}{
		{"/", EN},
		{"", EN},
		{"/index.html", EN},
		{"/apartments.html", EN},
		{"/bg/", BG},
		{"/bg", BG},
		{"/bg/contact.html", BG},
		{"/ru/about.html", RU},
		{"/ru", RU},
		{`C:\site\ru\parking.html`, RU},
		{`C:\site\bg\index.html`, BG},
		{"/home/me/site/bg/index.html", BG},
		{"/bgx/index.html", EN},
		{"/about-ru.html", EN},
		{"/images/bg-flag.png", EN},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Detect(tc.path), "path %q", tc.path)
	}
}

func TestDetectIsIdempotentAndOrdered(t *testing.T) {
	t.Parallel()

	path := "/ru/bg/index.html"
	first := Detect(path)
	require.Equal(t, first, Detect(path))
	// bg is checked before ru when both markers are present.
	require.Equal(t, BG, first)
}

func TestParseAndNormalize(t *testing.T) {
	t.Parallel()

	c, ok := Parse(" BG ")
	require.True(t, ok)
	require.Equal(t, BG, c)

	c, ok = Parse("de")
	require.False(t, ok)
	require.Equal(t, Default, c)

	require.Equal(t, EN, Normalize("fr"))
	require.True(t, Code("fr").IsDefault())
	require.False(t, RU.IsDefault())
	require.Equal(t, "bg", BG.Tag().String())
	require.Equal(t, []Code{EN, BG, RU}, All())
}

func TestModeFromScheme(t *testing.T) {
	t.Parallel()

	require.Equal(t, FileSystem, ModeFromScheme("file:"))
	require.Equal(t, FileSystem, ModeFromScheme("FILE"))
	require.Equal(t, WebRoot, ModeFromScheme("https"))
	require.Equal(t, WebRoot, ModeFromScheme(""))

	u, err := url.Parse("file:///home/me/site/bg/index.html")
	require.NoError(t, err)
	require.Equal(t, FileSystem, ModeFromURL(u))
	require.Equal(t, WebRoot, ModeFromURL(nil))
}
