package session

import (
	"context"
	"time"
)

// Store persists session records keyed by session identifier. Records are
// written wholesale: there is no partial update, and concurrent writers for
// the same identifier resolve last-write-wins.
//
// Implementations own key namespacing and serialization; callers hand over
// the bare identifier and the data mapping.
type Store interface {
	// Get retrieves the record for id. Returns ErrNotFound when the record
	// is absent, expired, or unreadable.
	Get(ctx context.Context, id string) (map[string]any, error)

	// Set overwrites the record for id and resets its time-to-live.
	Set(ctx context.Context, id string, data map[string]any, ttl time.Duration) error

	// Delete removes the record for id. Deleting an absent record is not an
	// error.
	Delete(ctx context.Context, id string) error
}
