package consent

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const defaultCookieMaxAge = 365 * 24 * time.Hour

// CookieOptions configures CookieStore.
type CookieOptions struct {
	// Name overrides the cookie name used for Key.
	Name       string
	SigningKey []byte
	Secure     bool
	MaxAge     time.Duration
}

// CookieStore keeps values in signed cookies on one request/response pair.
// Each key is its own cookie.
type CookieStore struct {
	w    http.ResponseWriter
	r    *http.Request
	opts CookieOptions
	set  map[string]string
}

// NewCookieStore binds a store to the current exchange.
func NewCookieStore(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieStore {
	if opts.MaxAge <= 0 {
		opts.MaxAge = defaultCookieMaxAge
	}
	return &CookieStore{w: w, r: r, opts: opts, set: map[string]string{}}
}

// Get returns the verified cookie value, or "" when it is missing or its
// signature does not match.
func (c *CookieStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := c.set[key]; ok {
		return v, nil
	}
	if c.r == nil {
		return "", nil
	}
	ck, err := c.r.Cookie(c.cookieName(key))
	if err != nil || ck.Value == "" {
		return "", nil
	}
	v, ok := verify(c.opts.SigningKey, ck.Value)
	if !ok {
		return "", nil
	}
	return v, nil
}

// Set writes the signed cookie to the response.
func (c *CookieStore) Set(_ context.Context, key, value string) error {
	c.set[key] = value
	if c.w == nil {
		return nil
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     c.cookieName(key),
		Value:    sign(c.opts.SigningKey, value),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(c.opts.MaxAge),
	})
	return nil
}

func (c *CookieStore) cookieName(key string) string {
	if key == Key && c.opts.Name != "" {
		return c.opts.Name
	}
	return key
}

func sign(key []byte, value string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "." +
		base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(key []byte, raw string) (string, bool) {
	parts := strings.Split(raw, ".")
	if len(parts) != 2 {
		return "", false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", false
	}
	return string(payload), true
}

// NewSigningKey returns a random process-local key for development.
func NewSigningKey() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return []byte("insecure-dev-key-please-set-WEB_CONSENT_SIGNING_KEY")
	}
	return b
}

// VisitorID returns a new ULID for audit records, so audit keys sort by the
// time the visitor was first seen.
func VisitorID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("consent: visitor id: %w", err)
	}
	return id.String(), nil
}
