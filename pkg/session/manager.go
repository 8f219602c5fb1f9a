package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Manager owns the session protocol: it verifies and issues signed session
// cookies, loads and persists records through the Store, and exposes the
// per-request Session to handlers via Middleware.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	config  Config
	log     *slog.Logger
}

// New creates a session manager. A store is required; the cookie manager is
// built from Config.SecretKey unless one is supplied via WithCookieManager.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		config: DefaultConfig(),
		log:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		return nil, ErrNoStore
	}

	if m.cookies == nil {
		cookies, err := cookie.New(m.config.secrets())
		if err != nil {
			return nil, err
		}
		m.cookies = cookies
	}

	return m, nil
}

// NewFromConfig creates a Manager from the provided Config. The store is
// supplied via WithStore.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// load resolves the start state of a request: the session context and, when
// the cookie verified, the trusted identifier. Every failure mode degrades
// to an anonymous session.
func (m *Manager) load(r *http.Request) (*Session, string) {
	ctx := r.Context()

	id, err := m.cookies.GetSigned(r, m.config.CookieName)
	if err != nil {
		// NoCookie and InvalidCookie start identically: anonymous, no
		// trusted identifier. A forged cookie leaves nothing to clean up.
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			m.log.DebugContext(ctx, "session cookie rejected",
				slog.String("reason", err.Error()))
		}
		return NewSession(), ""
	}

	data, err := m.store.Get(ctx, id)
	if err != nil {
		// Absent record and unreachable store read the same: the request
		// proceeds anonymous, but the identifier stays trusted so an empty
		// end state still clears the cookie.
		if !errors.Is(err, ErrNotFound) {
			m.log.WarnContext(ctx, "session store read failed, proceeding without session",
				slog.String("error", err.Error()))
		}
		return NewSession(), id
	}

	return &Session{Data: data}, id
}

// commit applies the end-of-request transition. startID is non-empty only
// when the inbound cookie verified. Store failures are logged and swallowed:
// the response is emitted regardless.
func (m *Manager) commit(ctx context.Context, w http.ResponseWriter, sess *Session, startID string) {
	switch {
	case !sess.IsEmpty():
		id := startID
		if id == "" {
			id = uuid.NewString()
		}

		if err := m.store.Set(ctx, id, sess.Data, m.config.TTL); err != nil {
			m.log.WarnContext(ctx, "session store write failed, cookie issued without backing record",
				slog.String("error", err.Error()))
		}

		_ = m.cookies.SetSigned(w, m.config.CookieName, id,
			cookie.WithMaxAge(int(m.config.TTL.Seconds())),
			cookie.WithSecure(m.config.HTTPSOnly),
		)

	case startID != "":
		if err := m.store.Delete(ctx, startID); err != nil {
			m.log.WarnContext(ctx, "session store delete failed",
				slog.String("error", err.Error()))
		}

		m.cookies.Delete(w, m.config.CookieName,
			cookie.WithSecure(m.config.HTTPSOnly),
		)
	}
	// NoCookie/InvalidCookie with an empty end state: no store I/O, no
	// cookie header.
}
