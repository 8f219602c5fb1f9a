package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// recordingStore wraps a Store and remembers the identifiers it saw, so
// tests can assert on store state without decoding signed cookies.
type recordingStore struct {
	session.Store

	mu      sync.Mutex
	setIDs  []string
	deleted []string
}

func (r *recordingStore) Set(ctx context.Context, id string, data map[string]any, ttl time.Duration) error {
	r.mu.Lock()
	r.setIDs = append(r.setIDs, id)
	r.mu.Unlock()
	return r.Store.Set(ctx, id, data, ttl)
}

func (r *recordingStore) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	r.deleted = append(r.deleted, id)
	r.mu.Unlock()
	return r.Store.Delete(ctx, id)
}

func (r *recordingStore) lastSetID(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.setIDs, "expected at least one store write")
	return r.setIDs[len(r.setIDs)-1]
}

// failStore simulates an unreachable store.
type failStore struct{}

func (failStore) Get(context.Context, string) (map[string]any, error) {
	return nil, errors.New("connection refused")
}

func (failStore) Set(context.Context, string, map[string]any, time.Duration) error {
	return errors.New("connection refused")
}

func (failStore) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func newTestManager(t *testing.T, store session.Store) *session.Manager {
	t.Helper()

	mgr, err := session.New(
		session.WithStore(store),
		session.WithConfig(session.Config{
			SecretKey:  testSecret,
			CookieName: "session",
			TTL:        time.Hour,
		}),
	)
	require.NoError(t, err)
	return mgr
}

func newRecordedManager(t *testing.T) (*session.Manager, *recordingStore) {
	t.Helper()
	store := &recordingStore{Store: session.NewMemoryStore(0)}
	return newTestManager(t, store), store
}

// serve runs one request through the middleware with the given handler and
// inbound cookies.
func serve(mgr *session.Manager, handler http.HandlerFunc, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	mgr.Middleware(handler).ServeHTTP(w, r)
	return w
}

func setUser(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session.MustFromContext(r.Context()).Set("user", name)
	}
}

func noop(w http.ResponseWriter, r *http.Request) {}

func clearSession(w http.ResponseWriter, r *http.Request) {
	session.MustFromContext(r.Context()).Clear()
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestMiddleware_NoCookieEmpty(t *testing.T) {
	mgr, store := newRecordedManager(t)

	w := serve(mgr, noop)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
	assert.Empty(t, store.setIDs)
	assert.Empty(t, store.deleted)
}

func TestMiddleware_NoCookieNonEmpty(t *testing.T) {
	mgr, store := newRecordedManager(t)

	w := serve(mgr, setUser("alice"))

	c := sessionCookie(t, w)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
	assert.False(t, c.Secure)

	id := store.lastSetID(t)
	data, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", data["user"])
}

func TestMiddleware_ValidCookieNonEmpty(t *testing.T) {
	mgr, store := newRecordedManager(t)

	first := serve(mgr, setUser("alice"))
	c1 := sessionCookie(t, first)
	id := store.lastSetID(t)

	// Follow-up request observes the data and overwrites the record.
	second := serve(mgr, func(w http.ResponseWriter, r *http.Request) {
		sess := session.MustFromContext(r.Context())
		user, ok := sess.GetString("user")
		require.True(t, ok)
		assert.Equal(t, "alice", user)
		sess.Set("visits", 2)
	}, c1)

	// The cookie is re-issued unconditionally for the same identifier.
	c2 := sessionCookie(t, second)
	assert.Equal(t, c1.Value, c2.Value)
	assert.Equal(t, 3600, c2.MaxAge)

	assert.Equal(t, []string{id, id}, store.setIDs)

	data, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", data["user"])
	assert.EqualValues(t, 2, data["visits"])
}

func TestMiddleware_ValidCookieEmpty(t *testing.T) {
	mgr, store := newRecordedManager(t)

	first := serve(mgr, setUser("alice"))
	c1 := sessionCookie(t, first)
	id := store.lastSetID(t)

	second := serve(mgr, clearSession, c1)

	cleared := sessionCookie(t, second)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	assert.Equal(t, []string{id}, store.deleted)
	_, err := store.Get(context.Background(), id)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMiddleware_InvalidCookieEmpty(t *testing.T) {
	mgr, store := newRecordedManager(t)

	forged := &http.Cookie{Name: "session", Value: "dGFtcGVyZWQ=|Zm9yZ2VkdGFn"}
	w := serve(mgr, noop, forged)

	assert.Equal(t, http.StatusOK, w.Code)
	// Nothing to clean up: the forged identifier was never trusted.
	assert.Empty(t, w.Result().Cookies())
	assert.Empty(t, store.deleted)
}

func TestMiddleware_InvalidCookieNonEmpty(t *testing.T) {
	mgr, store := newRecordedManager(t)

	forged := &http.Cookie{Name: "session", Value: "garbage-without-a-tag"}
	w := serve(mgr, setUser("alice"), forged)

	// Treated as NoCookie: a fresh identifier is generated and signed.
	fresh := sessionCookie(t, w)
	assert.NotEmpty(t, fresh.Value)
	assert.NotEqual(t, forged.Value, fresh.Value)

	id := store.lastSetID(t)
	data, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", data["user"])

	// The fresh cookie round-trips.
	second := serve(mgr, func(w http.ResponseWriter, r *http.Request) {
		user, ok := session.MustFromContext(r.Context()).GetString("user")
		assert.True(t, ok)
		assert.Equal(t, "alice", user)
		session.MustFromContext(r.Context()).Set("user", "alice")
	}, fresh)
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestMiddleware_ExpiredRecordWithValidCookie(t *testing.T) {
	mgr, store := newRecordedManager(t)

	first := serve(mgr, setUser("alice"))
	c1 := sessionCookie(t, first)
	id := store.lastSetID(t)
	require.NoError(t, store.Store.Delete(context.Background(), id))

	// Record gone (TTL expiry): the request proceeds anonymous.
	w := serve(mgr, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, session.MustFromContext(r.Context()).IsEmpty())
	}, c1)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_StoreDownOnRead(t *testing.T) {
	// Obtain a valid cookie with a healthy store, then swap in a dead one
	// sharing the same signing secret.
	healthy, _ := newRecordedManager(t)
	c1 := sessionCookie(t, serve(healthy, setUser("alice")))

	degraded := newTestManager(t, failStore{})

	w := serve(degraded, func(w http.ResponseWriter, r *http.Request) {
		// Fail-open: previously valid cookie, empty session, no error.
		assert.True(t, session.MustFromContext(r.Context()).IsEmpty())
		w.WriteHeader(http.StatusOK)
	}, c1)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_StoreDownOnWrite(t *testing.T) {
	mgr := newTestManager(t, failStore{})

	w := serve(mgr, setUser("alice"))

	// The response is still emitted and the cookie issued even though the
	// backing record failed to persist.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, sessionCookie(t, w).Value)
}

func TestMiddleware_CommitPrecedesBody(t *testing.T) {
	mgr, _ := newRecordedManager(t)

	w := serve(mgr, func(w http.ResponseWriter, r *http.Request) {
		session.MustFromContext(r.Context()).Set("user", "alice")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "created", w.Body.String())
	assert.NotEmpty(t, sessionCookie(t, w).Value)
}

func TestMiddleware_MutationsAfterFirstWriteAreLost(t *testing.T) {
	mgr, store := newRecordedManager(t)

	serve(mgr, func(w http.ResponseWriter, r *http.Request) {
		sess := session.MustFromContext(r.Context())
		sess.Set("user", "alice")
		_, _ = w.Write([]byte("ok")) // commit happens here
		sess.Set("late", true)
	})

	id := store.lastSetID(t)
	data, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", data["user"])
	_, hasLate := data["late"]
	assert.False(t, hasLate)
}

func TestMiddleware_DistinctSessionsAreIsolated(t *testing.T) {
	mgr, _ := newRecordedManager(t)

	alice := sessionCookie(t, serve(mgr, setUser("alice")))
	bob := sessionCookie(t, serve(mgr, setUser("bob")))
	require.NotEqual(t, alice.Value, bob.Value)

	// Mutating alice's session leaves bob's untouched.
	serve(mgr, func(w http.ResponseWriter, r *http.Request) {
		session.MustFromContext(r.Context()).Set("user", "alice2")
	}, alice)

	serve(mgr, func(w http.ResponseWriter, r *http.Request) {
		user, ok := session.MustFromContext(r.Context()).GetString("user")
		require.True(t, ok)
		assert.Equal(t, "bob", user)
		session.MustFromContext(r.Context()).Set("user", "bob")
	}, bob)
}

func TestMiddleware_SecureCookies(t *testing.T) {
	store := session.NewMemoryStore(0)
	mgr, err := session.New(
		session.WithStore(store),
		session.WithConfig(session.Config{
			SecretKey:  testSecret,
			CookieName: "session",
			TTL:        time.Hour,
			HTTPSOnly:  true,
		}),
	)
	require.NoError(t, err)

	w := serve(mgr, setUser("alice"))
	assert.True(t, sessionCookie(t, w).Secure)
}

func TestMiddleware_CookieNameOverride(t *testing.T) {
	mgr, err := session.New(
		session.WithStore(session.NewMemoryStore(0)),
		session.WithConfig(session.Config{SecretKey: testSecret, TTL: time.Hour}),
		session.WithCookieName("sid"),
	)
	require.NoError(t, err)

	w := serve(mgr, setUser("alice"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
}

// Full lifecycle: anonymous -> login -> authenticated visit -> logout.
func TestMiddleware_FullLifecycle(t *testing.T) {
	mgr, store := newRecordedManager(t)

	// No cookie; handler sets {"user": "alice"}.
	login := serve(mgr, setUser("alice"))
	c := sessionCookie(t, login)
	id := store.lastSetID(t)

	// Follow-up sees the data, then clears it.
	logout := serve(mgr, func(w http.ResponseWriter, r *http.Request) {
		sess := session.MustFromContext(r.Context())
		user, ok := sess.GetString("user")
		require.True(t, ok)
		require.Equal(t, "alice", user)
		sess.Clear()
	}, c)

	cleared := sessionCookie(t, logout)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// Original cookie now maps to nothing.
	third := serve(mgr, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, session.MustFromContext(r.Context()).IsEmpty())
	}, c)
	assert.Equal(t, http.StatusOK, third.Code)

	_, err := store.Get(context.Background(), id)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestFromContext_WithoutMiddleware(t *testing.T) {
	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)

	assert.Panics(t, func() {
		session.MustFromContext(context.Background())
	})
}
