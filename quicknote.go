package quicknote

import (
	"log/slog"
	"time"

	"github.com/aretw0/quicknote/internal/platform"
	"github.com/aretw0/quicknote/pkg/adapters/fs"
	"github.com/aretw0/quicknote/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Note is a public alias for the note record.
type Note = core.Note

// Service is a public alias for the note service.
type Service = core.Service

// Statistics is a public alias for the stats summary.
type Statistics = core.Statistics

// --- Configuration ---

// Option defines a functional option for configuring quicknote.
type Option = platform.Option

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithSerializer forces the store document format.
func WithSerializer(s fs.Serializer) Option {
	return platform.WithSerializer(s)
}

// WithReadOnly opens the store without write access.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temp-dir sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithErrorHandler receives store failures that were recovered from.
func WithErrorHandler(fn func(error)) Option {
	return platform.WithErrorHandler(fn)
}

// WithClock sets the time source for new notes.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithIDGenerator sets the id generator for new notes.
func WithIDGenerator(gen core.IDGenerator) Option {
	return platform.WithIDGenerator(gen)
}

// --- Factory ---

// New creates a note service backed by the store file at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init prepares the store at path explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Safety ---

// IsDevRun reports whether the process was started by `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// ResolveStorePath returns the path the store would be opened at.
func ResolveStorePath(path string, forceTemp bool) string {
	return platform.ResolveStorePath(path, forceTemp)
}
