// Package content serves the legal pages written as markdown with YAML
// front matter under <dir>/legal/<lang>/<slug>.md.
package content

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/vulchevd/web.io/internal/lang"
	"github.com/vulchevd/web.io/internal/seo"
)

// ErrNotFound is returned when no language has the requested page.
var ErrNotFound = errors.New("content: not found")

const (
	defaultDir      = "content"
	defaultCacheTTL = 5 * time.Minute
	legalKind       = "legal"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Page is one rendered markdown page.
type Page struct {
	Slug      string
	Lang      lang.Code
	Title     string
	Summary   string
	Body      string // markdown source without front matter
	HTML      string // sanitized rendering of Body
	UpdatedAt time.Time
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

// Options configures a Store.
type Options struct {
	Dir string
	// CacheTTL defaults to five minutes; a negative value disables caching.
	CacheTTL time.Duration
	Now      func() time.Time
}

// Store reads pages from disk and keeps them in memory for CacheTTL. It is
// safe for concurrent use.
type Store struct {
	dir    string
	ttl    time.Duration
	now    func() time.Time
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// New returns a Store rooted at opts.Dir.
func New(opts Options) *Store {
	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		dir = defaultDir
	}
	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(false)
	return &Store{
		dir:    dir,
		ttl:    ttl,
		now:    now,
		md:     goldmark.New(goldmark.WithExtensions(extension.Table, extension.Linkify)),
		policy: policy,
		items:  map[string]cacheEntry{},
	}
}

// Dir returns the content root.
func (s *Store) Dir() string { return s.dir }

// Legal returns the legal page slug in language l, falling back to the
// default language when l has no translation.
func (s *Store) Legal(ctx context.Context, slug string, l lang.Code) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	l = lang.Normalize(l)

	key := strings.Join([]string{legalKind, string(l), slug}, "|")
	if page, ok := s.cached(key); ok {
		return page, nil
	}

	priority := []lang.Code{l}
	if !l.IsDefault() {
		priority = append(priority, lang.Default)
	}
	for _, candidate := range priority {
		page, err := s.read(legalKind, slug, candidate)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return Page{}, err
		}
		s.store(key, page)
		return page, nil
	}
	return Page{}, ErrNotFound
}

func (s *Store) read(kind, slug string, l lang.Code) (Page, error) {
	file := filepath.Join(s.dir, kind, string(l), slug+".md")
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return Page{}, ErrNotFound
	}
	if err != nil {
		return Page{}, fmt.Errorf("content: read %s: %w", file, err)
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}

	page := Page{
		Slug:      slug,
		Lang:      l,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Body:      body,
		HTML:      strings.TrimSpace(s.policy.Sanitize(buf.String())),
		UpdatedAt: parseDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

// Document wraps the page in a minimal HTML document with header and footer
// placeholders, ready to be mounted.
func (p Page) Document() (string, error) {
	data := struct {
		Meta seo.Meta
		Page Page
		Body template.HTML
	}{
		Meta: seo.Meta{Title: p.Title, Description: p.Summary, Lang: p.Lang},
		Page: p,
		// HTML has been through the sanitizer.
		Body: template.HTML(p.HTML),
	}
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "legal", data); err != nil {
		return "", fmt.Errorf("content: render document %s: %w", p.Slug, err)
	}
	return buf.String(), nil
}

func (s *Store) cached(key string) (Page, bool) {
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(key string, page Page) {
	if s.ttl < 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = cacheEntry{page: page, expires: s.now().Add(s.ttl)}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.TrimSuffix(strings.Trim(slug, "/"), ".html")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}
