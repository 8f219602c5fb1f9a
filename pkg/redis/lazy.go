package redis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Lazy defers dialing Redis until the client is first needed, then holds the
// connection for the life of the process. It replaces ad hoc "connect if nil"
// checks scattered across call sites with a single-initialization primitive.
//
// Client never retries a failed dial within the same call, but a failed dial
// is not sticky: the next Client call attempts to connect again.
type Lazy struct {
	cfg Config

	mu     sync.Mutex
	client *redis.Client
}

// NewLazy creates a lazily-connected client holder for the given config.
// No network I/O happens until Client is called.
func NewLazy(cfg Config) *Lazy {
	return &Lazy{cfg: cfg}
}

// Client returns the shared Redis client, dialing on first use.
func (l *Lazy) Client(ctx context.Context) (*redis.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client != nil {
		return l.client, nil
	}

	client, err := Connect(ctx, l.cfg)
	if err != nil {
		return nil, err
	}

	l.client = client
	return l.client, nil
}

// Close releases the underlying connection if one was ever established.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client == nil {
		return nil
	}

	err := l.client.Close()
	l.client = nil
	return err
}
