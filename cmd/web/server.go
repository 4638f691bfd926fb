package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vulchevd/web.io/internal/config"
	"github.com/vulchevd/web.io/internal/consent"
	"github.com/vulchevd/web.io/internal/content"
	"github.com/vulchevd/web.io/internal/i18n"
	mw "github.com/vulchevd/web.io/internal/middleware"
	"github.com/vulchevd/web.io/internal/nav"
	"github.com/vulchevd/web.io/internal/site"
)

const visitorCookie = "visitor_id"

// server holds the collaborators every page request shares.
type server struct {
	cfg      config.Config
	logger   *zap.Logger
	bundle   *i18n.Bundle
	resolver *nav.Resolver
	renderer *site.Renderer
	content  *content.Store
	// audit is nil unless WEB_REDIS_URL is set.
	audit      *consent.RedisStore
	signingKey []byte
	newVisitor func() (string, error)
}

func newServer(cfg config.Config, logger *zap.Logger) (*server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bundle, err := i18n.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	resolver := nav.NewResolver(nav.Options{HomeStyle: cfg.Site.HomeStyle})
	renderer, err := site.New(site.Options{Bundle: bundle, Resolver: resolver})
	if err != nil {
		return nil, err
	}

	s := &server{
		cfg:      cfg,
		logger:   logger,
		bundle:   bundle,
		resolver: resolver,
		renderer: renderer,
		content:  content.New(content.Options{Dir: cfg.Site.ContentDir, CacheTTL: cfg.Site.ContentCacheTTL}),
		// replaced in tests
		newVisitor: consent.VisitorID,
	}

	if cfg.Consent.SigningKey != "" {
		s.signingKey = []byte(cfg.Consent.SigningKey)
	} else {
		logger.Warn("WEB_CONSENT_SIGNING_KEY not set; consent cookies will not survive a restart")
		s.signingKey = consent.NewSigningKey()
	}

	if cfg.Consent.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Consent.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		s.audit = consent.NewRedisStore(redis.NewClient(opts), consent.RedisOptions{
			Prefix: cfg.Consent.RedisPrefix,
			TTL:    cfg.Consent.RedisTTL,
		})
	}
	return s, nil
}

// routes builds the chi router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that sets it.
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/assets/*", mw.AssetsWithCache(s.sitePath("assets"), "/assets"))
	r.Handle("/images/*", mw.AssetsWithCache(s.sitePath("images"), "/images"))

	r.Group(func(r chi.Router) {
		r.Use(mw.CSRF(s.cfg.Consent.SecureCookie))
		r.Use(mw.Locale)
		r.Post("/consent", s.handleConsent)
		r.Get("/*", s.handlePage)
	})
	return r
}

// cookieStore binds the signed consent cookie to this exchange.
func (s *server) cookieStore(w http.ResponseWriter, r *http.Request) *consent.CookieStore {
	return consent.NewCookieStore(w, r, consent.CookieOptions{
		Name:       s.cfg.Consent.CookieName,
		SigningKey: s.signingKey,
		Secure:     s.cfg.Consent.SecureCookie,
	})
}

// consentStore is cookieStore mirrored to redis when an audit store is
// configured. Reads always come from the cookie.
func (s *server) consentStore(w http.ResponseWriter, r *http.Request) (consent.Store, error) {
	cookies := s.cookieStore(w, r)
	if s.audit == nil {
		return cookies, nil
	}
	visitor, err := s.visitorID(w, r)
	if err != nil {
		return nil, err
	}
	return consent.Tee{cookies, s.audit.For(visitor)}, nil
}

// visitorID returns the visitor cookie, issuing one when missing.
func (s *server) visitorID(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(visitorCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	id, err := s.newVisitor()
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("empty visitor id")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Consent.SecureCookie,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})
	return id, nil
}

func (s *server) close() error {
	if s.audit == nil {
		return nil
	}
	if c, ok := s.audit.Client().(io.Closer); ok {
		return c.Close()
	}
	return nil
}
