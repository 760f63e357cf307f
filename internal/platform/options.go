package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/quicknote/pkg/adapters/fs"
	"github.com/aretw0/quicknote/pkg/core"
)

// options holds the internal configuration for the quicknote service.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	serializer   fs.Serializer
	readOnly     bool
	devSafety    bool
	forceTemp    bool
	errorHandler func(error)
	serviceOpts  []core.ServiceOption
}

// Option defines a functional option for configuring quicknote.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		devSafety: true,
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. a mock).
// If provided, the file store is skipped and path resolution does not apply.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithSerializer forces the store document format instead of picking it
// from the file extension.
func WithSerializer(s fs.Serializer) Option {
	return func(o *options) {
		o.serializer = s
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Every mutation returns core.ErrReadOnly.
// 2. The store directory is not created.
// 3. Dev safety is BYPASSED (the real path is read).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true), the store is re-rooted into a temporary directory to
// protect the real ~/.quicknotes.json.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithForceTemp forces the store into the temporary sandbox (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithErrorHandler registers a callback for failures the store recovers
// from: unreadable store files, skipped records and watcher errors.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithClock sets the time source used for new notes.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.serviceOpts = append(o.serviceOpts, core.WithClock(now))
	}
}

// WithIDGenerator sets the id generator used for new notes.
func WithIDGenerator(gen core.IDGenerator) Option {
	return func(o *options) {
		o.serviceOpts = append(o.serviceOpts, core.WithIDGenerator(gen))
	}
}
