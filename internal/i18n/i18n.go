package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vulchevd/web.io/internal/lang"
	"github.com/vulchevd/web.io/locales"
)

// RequiredKeys lists every label the site renders. Each supported language
// must define all of them.
var RequiredKeys = []string{
	"nav.home", "nav.apartments", "nav.parking", "nav.about", "nav.contact",
	"legal.privacy", "legal.terms", "legal.cookies",
	"footer.contact_us", "footer.quick_links", "footer.legal", "footer.copyright",
	"contact.ceo_title", "contact.gm_title", "contact.address",
	"form.name_required", "form.email_required", "form.message_required", "form.thank_you",
	"cookies.text", "cookies.accept", "cookies.decline", "cookies.policy",
	"language.bg", "language.ru", "language.en",
}

type Bundle struct {
	dict      map[lang.Code]map[string]string
	labels    map[lang.Code]Labels
	fallback  lang.Code
	supported []lang.Code
}

// MissingKeysError reports labels that are absent or empty, per language.
type MissingKeysError struct {
	Missing map[lang.Code][]string
}

func (e *MissingKeysError) Error() string {
	codes := make([]string, 0, len(e.Missing))
	for c := range e.Missing {
		codes = append(codes, string(c))
	}
	sort.Strings(codes)
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, fmt.Sprintf("%s: %s", c, strings.Join(e.Missing[lang.Code(c)], ", ")))
	}
	return "i18n: incomplete translations [" + strings.Join(parts, "; ") + "]"
}

// LoadDefault loads the embedded translation table for every supported language.
func LoadDefault() (*Bundle, error) {
	return Load(locales.FS, lang.Default, lang.All())
}

// Load reads <code>.yaml for each supported language from fsys. Every file
// must exist and define every key in RequiredKeys; otherwise Load fails and
// lists all gaps.
func Load(fsys fs.FS, fallback lang.Code, supported []lang.Code) (*Bundle, error) {
	if len(supported) == 0 {
		supported = lang.All()
	}
	b := &Bundle{
		dict:      map[lang.Code]map[string]string{},
		labels:    map[lang.Code]Labels{},
		fallback:  fallback,
		supported: append([]lang.Code(nil), supported...),
	}
	missing := map[lang.Code][]string{}
	for _, l := range supported {
		name := string(l) + ".yaml"
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing[l] = append([]string(nil), RequiredKeys...)
				continue
			}
			return nil, fmt.Errorf("load locale %s: %w", l, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", name, err)
		}
		m := map[string]string{}
		flatten("", tree, m)
		for _, key := range RequiredKeys {
			if strings.TrimSpace(m[key]) == "" {
				missing[l] = append(missing[l], key)
			}
		}
		b.dict[l] = m
	}
	if len(missing) > 0 {
		return nil, &MissingKeysError{Missing: missing}
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	for _, l := range supported {
		b.labels[l] = newLabels(b.dict[l])
	}
	return b, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Supported returns the loaded languages in load order.
func (b *Bundle) Supported() []lang.Code {
	out := make([]lang.Code, len(b.supported))
	copy(out, b.supported)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() lang.Code { return b.fallback }

// Labels returns the complete label set for l. Unsupported languages get the
// fallback's labels.
func (b *Bundle) Labels(l lang.Code) Labels {
	if v, ok := b.labels[l]; ok {
		return v
	}
	return b.labels[b.fallback]
}

// T returns translation for key in lang, falling back to default and finally key.
func (b *Bundle) T(l lang.Code, key string) string {
	if m, ok := b.dict[l]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}
