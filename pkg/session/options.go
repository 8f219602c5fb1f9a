package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithStore sets the session store.
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithConfig sets custom configuration.
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithTTL sets the record time-to-live and cookie Max-Age.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.config.TTL = ttl
	}
}

// WithSecureCookies toggles the Secure flag on emitted cookies.
func WithSecureCookies(secure bool) Option {
	return func(m *Manager) {
		m.config.HTTPSOnly = secure
	}
}

// WithCookieManager sets a pre-built cookie manager instead of constructing
// one from Config.SecretKey.
func WithCookieManager(cookieMgr *cookie.Manager) Option {
	return func(m *Manager) {
		m.cookies = cookieMgr
	}
}

// WithLogger sets the logger for degradation events. Store failures are
// invisible to clients, so this is the only place they surface.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}
