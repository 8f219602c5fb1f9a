package session

import "net/http"

// Middleware wraps every request with session handling: it derives the
// session from the inbound cookie, exposes it to downstream handlers via
// the request context, and on the way out persists, refreshes, or deletes
// the stored record and emits the matching Set-Cookie header.
//
// The commit runs right before the response header is written, so handlers
// may mutate the session at any point before their first Write. An aborted
// request never reaches the commit; in-flight mutations are lost, which is
// safe (no partial record is ever persisted). Requests carrying the same
// identifier race last-write-wins; there is no cross-request ordering.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, startID := m.load(r)

		ctx := WithSession(r.Context(), sess)

		sw := &sessionWriter{
			ResponseWriter: w,
			commit: func() {
				m.commit(ctx, w, sess, startID)
			},
		}

		next.ServeHTTP(sw, r.WithContext(ctx))

		// Handlers that return without writing still commit here, before
		// net/http flushes the implicit 200.
		sw.commitOnce()
	})
}

// sessionWriter intercepts the first header write so the session commit
// (store I/O plus Set-Cookie) happens while headers are still mutable.
type sessionWriter struct {
	http.ResponseWriter
	commit    func()
	committed bool
}

func (w *sessionWriter) WriteHeader(statusCode int) {
	w.commitOnce()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	// An implicit 200 flushes headers too.
	w.commitOnce()
	return w.ResponseWriter.Write(b)
}

// Unwrap supports http.ResponseController for flushing, deadlines, etc.
func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *sessionWriter) commitOnce() {
	if w.committed {
		return
	}
	w.committed = true
	w.commit()
}
