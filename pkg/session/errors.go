package session

import "errors"

var (
	// ErrNotFound indicates no record exists for the identifier
	ErrNotFound = errors.New("session.not_found")

	// ErrNoStore indicates the manager was built without a store
	ErrNoStore = errors.New("session.no_store")
)
