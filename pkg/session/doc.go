// Package session keeps per-user session state for stateless, horizontally
// replicated HTTP services. The client holds a signed cookie carrying an
// opaque identifier; the data lives in a shared store under that identifier,
// so any replica can serve any request.
//
// # Architecture
//
// A Manager ties three pieces together: a cookie.Manager that signs and
// verifies the identifier (tamper-evident, URL-safe), a Store that persists
// the record as JSON with a TTL (Redis in production, memory in tests), and
// a Middleware that runs the protocol around every request:
//
//	cookie ──verify──► store.Get ──► Session in context
//	                                      │ handlers read/write
//	commit ◄──persist/delete/refresh──────┘
//
// The commit at response time follows the session's end state: a non-empty
// session is written wholesale with a fresh TTL and its cookie re-issued
// (sliding expiration); an empty session with a previously valid cookie is
// deleted from the store and the cookie revoked; anything else is a no-op.
//
// # Degradation
//
// No failure in this layer ever fails a request. A bad signature, a missing
// or corrupt record, or an unreachable store all degrade to an anonymous
// session on the way in; store errors on the way out are logged and
// swallowed. This trades consistency for availability on purpose: losing a
// session re-authenticates a user, failing a request loses them.
//
// # Usage
//
//	store := session.NewRedisStore(redisClient, "")
//	manager, err := session.NewFromConfig(cfg, session.WithStore(store))
//	if err != nil {
//	    // misconfiguration: terminate
//	}
//
//	mux := chi.NewRouter()
//	mux.Use(manager.Middleware)
//
//	mux.Post("/login", func(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context())
//	    sess.Set("user", "alice")
//	})
//
// Handlers interact only with the Session from the context; the signer and
// the store stay behind the middleware.
package session
