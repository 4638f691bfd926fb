package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vulchevd/web.io/internal/lang"
	"github.com/vulchevd/web.io/internal/testutil"
)

func writePage(t *testing.T, dir string, l lang.Code, slug, body string) string {
	t.Helper()
	path := filepath.Join(dir, "legal", string(l), slug+".md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const privacyEN = `---
title: Privacy Policy
summary: How we handle your data.
updated_at: 2024-05-01
---
# Data

We keep **nothing** we do not need.

<script>alert(1)</script>
`

func TestLegalRendersAndSanitizes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, lang.EN, "privacy-policy", privacyEN)

	s := New(Options{Dir: dir})
	page, err := s.Legal(context.Background(), "privacy-policy.html", lang.EN)
	require.NoError(t, err)
	require.Equal(t, "Privacy Policy", page.Title)
	require.Equal(t, "How we handle your data.", page.Summary)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	require.Contains(t, page.HTML, "<strong>nothing</strong>")
	require.NotContains(t, page.HTML, "<script>")
}

func TestLegalFallsBackToDefaultLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, lang.EN, "terms-of-service", "Terms body")
	writePage(t, dir, lang.BG, "cookie-policy", "---\ntitle: Бисквитки\n---\nТекст")

	s := New(Options{Dir: dir})
	page, err := s.Legal(context.Background(), "terms-of-service", lang.RU)
	require.NoError(t, err)
	require.Equal(t, lang.EN, page.Lang)
	require.Equal(t, "Terms Of Service", page.Title)

	page, err = s.Legal(context.Background(), "cookie-policy", lang.BG)
	require.NoError(t, err)
	require.Equal(t, lang.BG, page.Lang)
	require.Equal(t, "Бисквитки", page.Title)

	_, err = s.Legal(context.Background(), "cookie-policy", lang.EN)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLegalRejectsTraversal(t *testing.T) {
	t.Parallel()

	s := New(Options{Dir: t.TempDir()})
	for _, slug := range []string{"", "../secret", "a/b", `a\b`} {
		_, err := s.Legal(context.Background(), slug, lang.EN)
		require.ErrorIs(t, err, ErrNotFound, slug)
	}
}

func TestLegalInvalidFrontMatter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, lang.EN, "privacy-policy", "---\ntitle: [oops\n---\nbody")
	_, err := New(Options{Dir: dir}).Legal(context.Background(), "privacy-policy", lang.EN)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestLegalCache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writePage(t, dir, lang.EN, "privacy-policy", "---\ntitle: First\n---\nbody")

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(Options{Dir: dir, CacheTTL: time.Minute, Now: func() time.Time { return now }})

	page, err := s.Legal(context.Background(), "privacy-policy", lang.EN)
	require.NoError(t, err)
	require.Equal(t, "First", page.Title)

	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: Second\n---\nbody"), 0o644))
	page, _ = s.Legal(context.Background(), "privacy-policy", lang.EN)
	require.Equal(t, "First", page.Title)

	now = now.Add(2 * time.Minute)
	page, _ = s.Legal(context.Background(), "privacy-policy", lang.EN)
	require.Equal(t, "Second", page.Title)
}

func TestLegalHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{Dir: t.TempDir()}).Legal(ctx, "privacy-policy", lang.EN)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPageDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, lang.EN, "privacy-policy", privacyEN)
	page, err := New(Options{Dir: dir}).Legal(context.Background(), "privacy-policy", lang.EN)
	require.NoError(t, err)

	out, err := page.Document()
	require.NoError(t, err)
	doc := testutil.ParseHTML(t, []byte(out))
	require.Equal(t, "Privacy Policy", doc.Find("title").Text())
	require.Equal(t, "How we handle your data.", doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	require.Equal(t, 1, doc.Find("#header-placeholder").Length())
	require.Equal(t, 1, doc.Find("#footer-placeholder").Length())
	require.Equal(t, "Data", doc.Find("article h1").Text())
	require.Equal(t, "2024-05-01", doc.Find("time").AttrOr("datetime", ""))
}
