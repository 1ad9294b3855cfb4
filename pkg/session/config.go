package session

import "time"

// Config holds session configuration.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"copilot_session"`
	// HeaderName is the request and response header carrying the session ID.
	HeaderName string `env:"SESSION_HEADER" envDefault:"X-Session-ID"`
	// TTL is the cookie max age. Zero makes it a browser-session cookie.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	// SecureCookies enables the Secure flag (recommended for production).
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName: "copilot_session",
		HeaderName: "X-Session-ID",
		TTL:        24 * time.Hour,
	}
}

// NewFromConfig builds a Manager that reads the header first, then the
// cookie, and writes both.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	transport := NewCompositeTransport(
		NewHeaderTransport(cfg.HeaderName),
		NewCookieTransport(cfg.CookieName, cfg.SecureCookies),
	)
	return New(append([]Option{WithTransport(transport), WithTTL(cfg.TTL)}, opts...)...)
}
