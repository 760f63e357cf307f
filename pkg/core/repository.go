package core

import "context"

// Repository defines the contract for persisting the note collection.
// The collection is always read and written as a whole; there are no
// partial updates.
type Repository interface {
	// Load returns the full collection. A missing store is an empty collection.
	Load(ctx context.Context) ([]Note, error)

	// Save replaces the persisted collection with notes.
	Save(ctx context.Context, notes []Note) error

	// Initialize ensures the underlying storage is ready (e.g. the parent directory exists).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can report changes to the store.
type Watchable interface {
	// Watch emits an Event every time the persisted collection changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}
