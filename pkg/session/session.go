package session

// Session is the per-request mutable key-value mapping that handlers read
// and write while a request is being served. It has no identity of its own:
// the middleware binds it to a session identifier only at commit time.
//
// A Session is exclusively owned by the request that created it and must not
// be shared across requests, so no locking is done here. Values must be
// JSON-serializable to survive the trip through the store.
type Session struct {
	Data map[string]any `json:"data,omitempty"`
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{Data: make(map[string]any)}
}

// Get retrieves a value from session data.
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from session data. JSON numbers decode as
// float64, so those are converted.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session data.
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Set stores a value in session data.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Clear removes all data from the session. A request that ends with a
// cleared session has its stored record destroyed and its cookie revoked.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = make(map[string]any)
}

// IsEmpty reports whether the session holds no data. Emptiness at the end
// of a request is the destruction signal for the middleware.
func (s *Session) IsEmpty() bool {
	return s == nil || len(s.Data) == 0
}

// Len returns the number of entries in the session.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Data)
}

// Keys returns the keys currently held in the session, in no particular
// order.
func (s *Session) Keys() []string {
	if s == nil || len(s.Data) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.Data))
	for k := range s.Data {
		keys = append(keys, k)
	}
	return keys
}
