// Package locales embeds the translation table shipped with the site.
package locales

import "embed"

// FS holds one <code>.yaml file per supported language.
//
//go:embed *.yaml
var FS embed.FS
