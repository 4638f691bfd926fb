package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/vulchevd/web.io/internal/consent"
	"github.com/vulchevd/web.io/internal/lang"
	"github.com/vulchevd/web.io/internal/nav"
)

// renderFile runs the page pipeline over a document on disk, resolving links
// as a browser opening the file directly would, and writes the result to w.
// No consent has been recorded, so the banner is always included.
func (s *server) renderFile(ctx context.Context, file string, w io.Writer) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	f, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	loc := nav.Location{Path: u.Path, Mode: lang.ModeFromURL(u)}
	doc, err := s.buildDocument(ctx, f, loc, consent.NewMemoryStore(nil), "")
	if err != nil {
		return err
	}
	return doc.Render(w)
}
