package session

import (
	"net/http"
	"strings"
	"time"
)

// Transport defines how session IDs travel between client and server.
type Transport interface {
	// GetToken extracts the session ID from the request.
	GetToken(r *http.Request) (string, error)
	// SetToken sends the session ID in the response.
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	// ClearToken removes the session ID from the response.
	ClearToken(w http.ResponseWriter) error
}

// HeaderTransport carries the session ID in a header.
type HeaderTransport struct {
	headerName string
}

// NewHeaderTransport reads and writes the session ID in headerName.
func NewHeaderTransport(headerName string) *HeaderTransport {
	if headerName == "" {
		headerName = DefaultConfig().HeaderName
	}
	return &HeaderTransport{headerName: headerName}
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := strings.TrimSpace(r.Header.Get(t.headerName))
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, _ time.Duration) error {
	w.Header().Set(t.headerName, token)
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.headerName)
	return nil
}

// CookieTransport carries the session ID in an HttpOnly cookie.
type CookieTransport struct {
	name   string
	secure bool
}

// NewCookieTransport keeps the session ID in an HttpOnly cookie called name.
func NewCookieTransport(name string, secure bool) *CookieTransport {
	if name == "" {
		name = DefaultConfig().CookieName
	}
	return &CookieTransport{name: name, secure: secure}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrSessionNotFound
	}
	return c.Value, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// CompositeTransport reads from the first transport that has a token and
// writes to all of them.
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport reads from the first transport that has a token and writes to all of them.
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (t *CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, transport := range t.transports {
		token, err := transport.GetToken(r)
		if err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrSessionNotFound
}

func (t *CompositeTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	var lastErr error
	for _, transport := range t.transports {
		if err := transport.SetToken(w, token, ttl); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (t *CompositeTransport) ClearToken(w http.ResponseWriter) error {
	var lastErr error
	for _, transport := range t.transports {
		if err := transport.ClearToken(w); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
