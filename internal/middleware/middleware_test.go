package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vulchevd/web.io/internal/lang"
)

func TestLocaleFromPath(t *testing.T) {
	t.Parallel()

	var got lang.Code
	h := Locale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Lang(r)
	}))

	cases := map[string]lang.Code{
		"/":                 lang.Default,
		"/about.html":       lang.Default,
		"/bg/":              lang.Code("bg"),
		"/ru/contacts.html": lang.Code("ru"),
	}
	for path, want := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, want, got, path)
		require.Equal(t, want.Tag().String(), rec.Header().Get("Content-Language"), path)
	}
}

func TestLangFromEmptyContext(t *testing.T) {
	t.Parallel()
	require.Equal(t, lang.Default, LangFrom(context.Background()))
}

func TestRequestLoggerRecordsCompletion(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	var scoped *zap.Logger
	var rid string
	h := chiMid.RequestID(RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scoped = Logger(r.Context())
		rid, _ = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "short and stout")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bg/about.html", nil))

	require.NotNil(t, scoped)
	require.NotEmpty(t, rid)
	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "/bg/about.html", fields["path"])
	require.EqualValues(t, http.StatusTeapot, fields["status"])
	require.EqualValues(t, len("short and stout"), fields["bytes"])
	require.Equal(t, rid, fields["request_id"])
	require.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestLoggerDefaultsToNoop(t *testing.T) {
	t.Parallel()
	require.NotNil(t, Logger(context.Background()))
	require.NotNil(t, Logger(WithLogger(context.Background(), nil)))
}

func TestErrorLogsServerFailures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithLogger(req.Context(), zap.New(core)))

	rec := httptest.NewRecorder()
	Error(rec, req, http.StatusNotFound, os.ErrNotExist)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, logs.Len())

	rec = httptest.NewRecorder()
	Error(rec, req, http.StatusInternalServerError, io.ErrUnexpectedEOF)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.Len())
}

func TestCSRFDoubleSubmit(t *testing.T) {
	t.Parallel()

	var seen string
	h := CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CSRFToken(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value
	require.Equal(t, token, seen)

	post := func(value string) int {
		form := url.Values{CSRFField: {value}, "decision": {"accepted"}}
		req := httptest.NewRequest(http.MethodPost, "/consent", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookies[0])
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusOK, post(token))
	require.Equal(t, http.StatusForbidden, post("forged"))

	// no cookie at all
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/consent", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAssetsWithCacheETag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("body{}"), 0o644))

	h := AssetsWithCache(dir, "/assets")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{}", rec.Body.String())
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age")

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", `W/"stale", `+etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	logger, err := NewLogger("web")
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zap.InfoLevel))
	require.True(t, logger.Core().Enabled(zap.WarnLevel))

	t.Setenv("LOG_LEVEL", "shouting")
	logger, err = NewLogger("")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zap.InfoLevel))
}
