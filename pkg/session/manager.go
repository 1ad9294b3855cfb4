package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Manager resolves the advisor's session ID for each request, issuing a new
// one when the request has none.
type Manager struct {
	transport Transport
	ttl       time.Duration
	generate  func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithTransport replaces the default header and cookie transport.
func WithTransport(t Transport) Option {
	return func(m *Manager) {
		if t != nil {
			m.transport = t
		}
	}
}

// WithTTL sets the session cookie lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl >= 0 {
			m.ttl = ttl
		}
	}
}

// WithGenerator replaces uuid.NewString as the ID source.
func WithGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.generate = fn
		}
	}
}

// New creates a Manager. Without WithTransport it uses the default header.
func New(opts ...Option) *Manager {
	m := &Manager{
		ttl:      DefaultConfig().TTL,
		generate: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.transport == nil {
		m.transport = NewHeaderTransport("")
	}
	return m
}

// Valid reports whether id looks like a session ID this package issues.
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// Get returns the session ID carried by r.
func (m *Manager) Get(r *http.Request) (string, error) {
	id, err := m.transport.GetToken(r)
	if err != nil {
		return "", err
	}
	if !Valid(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSession, id)
	}
	return id, nil
}

// Ensure returns the request's session ID, or issues a new one and writes it
// to w. A malformed ID is replaced.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (id string, issued bool, err error) {
	if id, err := m.Get(r); err == nil {
		return id, false, nil
	}
	id = m.generate()
	if err := m.transport.SetToken(w, id, m.ttl); err != nil {
		return "", false, err
	}
	return id, true, nil
}

// Clear removes the session ID from the client.
func (m *Manager) Clear(w http.ResponseWriter) error {
	return m.transport.ClearToken(w)
}
