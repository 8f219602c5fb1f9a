package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryRecord struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore implements Store in process memory for tests and
// single-instance development. Records go through the same JSON round trip
// as the Redis store so both behave identically, including treating corrupt
// payloads as absent.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	ticker  *time.Ticker
	done    chan struct{}
}

// NewMemoryStore creates an in-memory store. A positive cleanupInterval
// starts a background sweep of expired records; expired records are
// invisible either way.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		records: make(map[string]memoryRecord),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Get retrieves the record for id.
func (m *MemoryStore) Get(ctx context.Context, id string) (map[string]any, error) {
	m.mu.RLock()
	record, exists := m.records[id]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}

	if time.Now().After(record.expiresAt) {
		m.mu.Lock()
		delete(m.records, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}

	var data map[string]any
	if err := json.Unmarshal(record.payload, &data); err != nil {
		return nil, ErrNotFound
	}
	return data, nil
}

// Set overwrites the record for id with a fresh expiry.
func (m *MemoryStore) Set(ctx context.Context, id string, data map[string]any, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[id] = memoryRecord{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes the record for id.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, id)
	return nil
}

// Close stops the cleanup goroutine.
func (m *MemoryStore) Close() error {
	select {
	case <-m.done:
		return nil
	default:
	}

	close(m.done)
	if m.ticker != nil {
		m.ticker.Stop()
	}
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.cleanup()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryStore) cleanup() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, record := range m.records {
		if now.After(record.expiresAt) {
			delete(m.records, id)
		}
	}
}
