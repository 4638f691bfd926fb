package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vulchevd/web.io/internal/nav"
)

const (
	defaultEnvFile             = ".env"
	defaultAddr                = ":8080"
	defaultSiteDir             = "site"
	defaultContentDir          = "content"
	defaultConsentCookie       = "cookieConsent"
	defaultRedisPrefix         = "consent"
	defaultConfirmationTimeout = 5 * time.Second
	defaultContentCacheTTL     = 5 * time.Minute
	defaultReadTimeout         = 15 * time.Second
	defaultWriteTimeout        = 30 * time.Second
	defaultIdleTimeout         = 120 * time.Second
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Consent   ConsentConfig
	Analytics AnalyticsConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SiteConfig locates the page documents and controls rendering.
type SiteConfig struct {
	Dir                 string
	ContentDir          string
	HomeStyle           nav.HomeStyle
	ConfirmationTimeout time.Duration
	ContentCacheTTL     time.Duration
}

// ConsentConfig controls where banner decisions are kept.
type ConsentConfig struct {
	CookieName   string
	SigningKey   string
	SecureCookie bool
	RedisURL     string
	RedisPrefix  string
	RedisTTL     time.Duration
}

// AnalyticsConfig holds client instrumentation settings. Tags load only after
// cookie consent is accepted.
type AnalyticsConfig struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	Debug            bool
}

var measurementIDPattern = regexp.MustCompile(`^G-[A-Z0-9]+$`)

// ValidationError is returned when configuration fields are invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, the .env file, environment
// variables and an optional explicit map, in increasing precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	p := parser{lookup: lookup}

	addr := p.string("WEB_ADDR", "")
	if addr == "" {
		if port := p.string("PORT", ""); port != "" {
			addr = ":" + strings.TrimPrefix(port, ":")
		} else {
			addr = defaultAddr
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:         addr,
			ReadTimeout:  p.duration("WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: p.duration("WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  p.duration("WEB_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Site: SiteConfig{
			Dir:                 p.string("WEB_SITE_DIR", defaultSiteDir),
			ContentDir:          p.string("WEB_CONTENT_DIR", defaultContentDir),
			HomeStyle:           p.homeStyle("WEB_HOME_STYLE"),
			ConfirmationTimeout: p.duration("WEB_CONFIRMATION_TIMEOUT", defaultConfirmationTimeout),
			ContentCacheTTL:     p.duration("WEB_CONTENT_CACHE_TTL", defaultContentCacheTTL),
		},
		Consent: ConsentConfig{
			CookieName:   p.string("WEB_CONSENT_COOKIE", defaultConsentCookie),
			SigningKey:   p.string("WEB_CONSENT_SIGNING_KEY", ""),
			SecureCookie: p.bool("WEB_CONSENT_SECURE", false),
			RedisURL:     p.string("WEB_REDIS_URL", ""),
			RedisPrefix:  p.string("WEB_REDIS_PREFIX", defaultRedisPrefix),
			RedisTTL:     p.duration("WEB_REDIS_TTL", 0),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: p.string("WEB_GA_MEASUREMENT_ID", ""),
			Debug:            p.bool("WEB_ANALYTICS_DEBUG", false),
		},
	}

	invalid := p.invalid
	invalid = append(invalid, validateConfig(cfg)...)
	if len(invalid) > 0 {
		return Config{}, &ValidationError{fields: invalid}
	}
	return cfg, nil
}

func validateConfig(cfg Config) []string {
	var invalid []string
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		invalid = append(invalid, "Server.Addr")
	}
	if strings.TrimSpace(cfg.Site.Dir) == "" {
		invalid = append(invalid, "Site.Dir")
	}
	if cfg.Site.ConfirmationTimeout <= 0 {
		invalid = append(invalid, "Site.ConfirmationTimeout")
	}
	if cfg.Site.ContentCacheTTL < 0 {
		invalid = append(invalid, "Site.ContentCacheTTL")
	}
	if strings.TrimSpace(cfg.Consent.CookieName) == "" {
		invalid = append(invalid, "Consent.CookieName")
	}
	if id := cfg.Analytics.GA4MeasurementID; id != "" && !measurementIDPattern.MatchString(id) {
		invalid = append(invalid, "Analytics.GA4MeasurementID")
	}
	return invalid
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

// parser reads typed values and remembers the keys it could not parse.
type parser struct {
	lookup  func(string) (string, bool)
	invalid []string
}

func (p *parser) string(key, fallback string) string {
	if value, ok := p.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	value, ok := p.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return d
}

func (p *parser) bool(key string, fallback bool) bool {
	value, ok := p.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	p.invalid = append(p.invalid, key)
	return fallback
}

func (p *parser) homeStyle(key string) nav.HomeStyle {
	value, _ := p.lookup(key)
	style, ok := nav.ParseHomeStyle(value)
	if !ok {
		p.invalid = append(p.invalid, key)
	}
	return style
}
