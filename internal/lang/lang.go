// Package lang detects the active site language from a location path and
// describes how the site is being served.
package lang

import (
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Code identifies one of the supported site languages.
type Code string

const (
	EN Code = "en"
	BG Code = "bg"
	RU Code = "ru"
)

// Default is the language served from the site root.
const Default = EN

// order lists the supported languages. Detection checks the non-default
// markers in this order.
var order = []Code{EN, BG, RU}

var tags = map[Code]language.Tag{
	EN: language.English,
	BG: language.Bulgarian,
	RU: language.Russian,
}

// All returns the supported languages, default first.
func All() []Code {
	out := make([]Code, len(order))
	copy(out, order)
	return out
}

// Parse normalizes s and reports whether it names a supported language.
func Parse(s string) (Code, bool) {
	c := Code(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range order {
		if c == known {
			return c, true
		}
	}
	return Default, false
}

// Normalize maps unsupported codes to Default.
func Normalize(c Code) Code {
	if v, ok := Parse(string(c)); ok {
		return v
	}
	return Default
}

// IsDefault reports whether c is served from the site root.
func (c Code) IsDefault() bool { return Normalize(c) == Default }

func (c Code) String() string { return string(c) }

// Tag returns the BCP 47 tag used for lang and hreflang attributes.
func (c Code) Tag() language.Tag {
	if t, ok := tags[Normalize(c)]; ok {
		return t
	}
	return language.English
}

// Detect returns the language whose directory segment appears in path.
// Both '/' and '\' separators are accepted, as is a bare trailing segment
// such as "/bg". Paths without a marker resolve to Default.
func Detect(path string) Code {
	for _, c := range order {
		if c == Default {
			continue
		}
		seg := string(c)
		if strings.Contains(path, "/"+seg+"/") ||
			strings.Contains(path, `\`+seg+`\`) ||
			strings.HasSuffix(path, "/"+seg) ||
			strings.HasSuffix(path, `\`+seg) {
			return c
		}
	}
	return Default
}

// Mode describes how the current document was reached.
type Mode int

const (
	// WebRoot means the site is served over HTTP with the default language at "/".
	WebRoot Mode = iota
	// FileSystem means pages are opened straight from disk; links must be relative.
	FileSystem
)

func (m Mode) String() string {
	if m == FileSystem {
		return "filesystem"
	}
	return "webroot"
}

// ModeFromScheme maps a location scheme to a deployment mode.
func ModeFromScheme(scheme string) Mode {
	if strings.EqualFold(strings.TrimSuffix(strings.TrimSpace(scheme), ":"), "file") {
		return FileSystem
	}
	return WebRoot
}

// ModeFromURL is ModeFromScheme for a parsed URL; nil means WebRoot.
func ModeFromURL(u *url.URL) Mode {
	if u == nil {
		return WebRoot
	}
	return ModeFromScheme(u.Scheme)
}
