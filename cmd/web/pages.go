package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vulchevd/web.io/internal/behavior"
	"github.com/vulchevd/web.io/internal/consent"
	"github.com/vulchevd/web.io/internal/content"
	"github.com/vulchevd/web.io/internal/dom"
	"github.com/vulchevd/web.io/internal/lang"
	mw "github.com/vulchevd/web.io/internal/middleware"
	"github.com/vulchevd/web.io/internal/nav"
)

// handlePage serves a site document with the shared chrome mounted and every
// behavior attached.
func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	rel, ok := pageFile(r.URL.Path)
	if !ok {
		mw.Error(w, r, http.StatusNotFound, nil)
		return
	}
	src, err := os.ReadFile(s.sitePath(rel))
	if errors.Is(err, fs.ErrNotExist) {
		src, err = s.legalDocument(r.Context(), rel, mw.Lang(r))
	}
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, content.ErrNotFound):
		mw.Error(w, r, http.StatusNotFound, nil)
		return
	case err != nil:
		mw.Error(w, r, http.StatusInternalServerError, err)
		return
	}

	loc := nav.Location{Path: r.URL.Path, Mode: lang.ModeFromURL(r.URL)}
	doc, err := s.buildDocument(r.Context(), bytes.NewReader(src), loc, s.cookieStore(w, r), mw.CSRFToken(r.Context()))
	if err != nil {
		mw.Error(w, r, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		mw.Error(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// the banner depends on the consent cookie
	w.Header().Add("Vary", "Cookie")
	_, _ = w.Write(buf.Bytes())
}

// buildDocument runs the page pipeline: parse, mount header and footer, then
// attach behaviors. Behavior failures are logged, not fatal.
func (s *server) buildDocument(ctx context.Context, src io.Reader, loc nav.Location, store consent.Store, csrfToken string) (*dom.Document, error) {
	logger := mw.Logger(ctx)
	doc, err := dom.Parse(src, loc, dom.WithContext(ctx), dom.WithIntersectionObserver(false))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	if err := s.renderer.Mount(doc); err != nil {
		return nil, fmt.Errorf("mount layout: %w", err)
	}
	err = behavior.AttachAll(doc,
		behavior.LazyImages{},
		behavior.SmoothScroll{},
		behavior.ContactForm{Bundle: s.bundle, ConfirmationTimeout: s.cfg.Site.ConfirmationTimeout},
		behavior.CookieBanner{
			Bundle:    s.bundle,
			Resolver:  s.resolver,
			Store:     store,
			CSRFField: mw.CSRFField,
			CSRFToken: csrfToken,
			OnError: func(err error) {
				logger.Warn("store consent", zap.Error(err))
			},
		},
		behavior.Analytics{
			MeasurementID: s.cfg.Analytics.GA4MeasurementID,
			Store:         store,
			Debug:         s.cfg.Analytics.Debug,
		},
	)
	if err != nil {
		logger.Warn("attach behaviors", zap.Error(err))
	}
	return doc, nil
}

// legalDocument renders a policy page from markdown when the site directory
// has no HTML file for it.
func (s *server) legalDocument(ctx context.Context, rel string, l lang.Code) ([]byte, error) {
	id, ok := nav.Lookup(rel)
	if !ok || !isLegal(id) {
		return nil, content.ErrNotFound
	}
	page, err := s.content.Legal(ctx, string(id), l)
	if err != nil {
		return nil, err
	}
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func isLegal(id nav.PageID) bool {
	for _, item := range nav.Legal {
		if item.Page == id {
			return true
		}
	}
	return false
}

// handleConsent records the banner decision posted without scripts and
// returns the visitor to the page they came from.
func (s *server) handleConsent(w http.ResponseWriter, r *http.Request) {
	st := consent.ParseState(r.PostFormValue("decision"))
	if st == consent.Unset {
		mw.Error(w, r, http.StatusBadRequest, nil)
		return
	}
	store, err := s.consentStore(w, r)
	if err != nil {
		mw.Error(w, r, http.StatusInternalServerError, err)
		return
	}
	if err := consent.Write(r.Context(), store, st); err != nil {
		// the cookie is written first, so the visitor's choice still sticks
		mw.Logger(r.Context()).Warn("record consent", zap.Error(err))
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the same-origin referer path, or "/".
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	return ref.Path
}

// pageFile maps a URL path to a document under the site directory:
// "/" is index.html, "/bg/" and "/bg" are bg/index.html and "/about" is
// about.html. Only HTML documents are served.
func pageFile(urlPath string) (string, bool) {
	clean := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if clean == "" {
		return "index.html", true
	}
	if _, ok := lang.Parse(clean); ok || strings.HasSuffix(urlPath, "/") {
		return clean + "/index.html", true
	}
	switch path.Ext(clean) {
	case ".html":
		return clean, true
	case "":
		return clean + ".html", true
	}
	return "", false
}

func (s *server) sitePath(rel string) string {
	return filepath.Join(s.cfg.Site.Dir, filepath.FromSlash(rel))
}
