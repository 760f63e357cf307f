package fs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/aretw0/quicknote/pkg/core"
)

// DefaultPerm is the mode of a newly created store file.
const DefaultPerm os.FileMode = 0600

// Repository implements core.Repository on a single local file.
// The whole collection is read on every Load and replaced atomically on every Save.
type Repository struct {
	Path       string
	config     Config
	serializer Serializer

	mu            sync.RWMutex
	lastLoad      *time.Time
	lastSave      *time.Time
	loadedNotes   int
	skipped       int
	watcherActive bool
}

// Config holds the configuration for the file repository.
type Config struct {
	Path     string
	Logger   *slog.Logger
	ReadOnly bool
	Perm     os.FileMode // mode for a new store file; existing files keep theirs

	// ErrorHandler receives load failures that were recovered from
	// (wrapping core.ErrStoreCorrupt) and watcher errors.
	ErrorHandler func(error)
}

// NewRepository creates a new file-backed repository.
// The document format follows the file extension (see SerializerFor).
func NewRepository(config Config) *Repository {
	if config.Perm == 0 {
		config.Perm = DefaultPerm
	}
	return &Repository{
		Path:       config.Path,
		config:     config,
		serializer: SerializerFor(config.Path),
	}
}

// RegisterSerializer replaces the format picked from the file extension.
func (r *Repository) RegisterSerializer(s Serializer) {
	r.serializer = s
}

// Initialize ensures the directory holding the store exists.
// It never creates the store file itself: a missing file is an empty collection.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.Path == "" {
		return errors.New("store path is empty")
	}

	dir := filepath.Dir(r.Path)
	if r.config.ReadOnly {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create store directory")
	}
	return nil
}

// Load reads the whole collection.
//
// Reads are resilient: a missing file is an empty collection, and a file
// that cannot be read or parsed is reported through the logger and the
// ErrorHandler and treated as empty. Records that fail validation are
// dropped individually.
func (r *Repository) Load(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			if r.config.Logger != nil {
				r.config.Logger.Debug("note store not found, starting empty", "path", r.Path)
			}
			r.recordLoad(0, 0)
			return []core.Note{}, nil
		}
		r.reportCorrupt("note store unreadable, continuing without it", errors.Wrapf(core.ErrStoreCorrupt, "read %s: %v", r.Path, err))
		r.recordLoad(0, 0)
		return []core.Note{}, nil
	}

	notes, skipped, err := r.serializer.Decode(data)
	if err != nil {
		r.reportCorrupt("note store unreadable, continuing without it", errors.Wrapf(core.ErrStoreCorrupt, "parse %s: %v", r.Path, err))
		r.recordLoad(0, 0)
		return []core.Note{}, nil
	}

	for _, s := range skipped {
		r.reportCorrupt("skipping unreadable note", errors.Wrapf(core.ErrStoreCorrupt, "%s: %v", r.Path, s))
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("loaded notes", "path", r.Path, "count", len(notes), "skipped", len(skipped))
	}
	r.recordLoad(len(notes), len(skipped))
	return notes, nil
}

// Save replaces the store with notes.
//
// The document is written to a temp file next to the store and renamed over
// it, so readers and crashes only ever observe the previous or the new
// collection. Write failures are returned as *core.IOError.
func (r *Repository) Save(ctx context.Context, notes []core.Note) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := r.serializer.Encode(notes)
	if err != nil {
		return errors.Wrapf(err, "failed to encode notes as %s", r.serializer.Name())
	}

	if err := writeFileAtomic(r.Path, data, r.fileMode()); err != nil {
		return &core.IOError{Op: "save", Path: r.Path, Err: err}
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("saved notes", "path", r.Path, "count", len(notes))
	}
	r.recordSave()
	return nil
}

// fileMode keeps the mode of an existing store file.
func (r *Repository) fileMode() os.FileMode {
	if info, err := os.Stat(r.Path); err == nil {
		return info.Mode().Perm()
	}
	return r.config.Perm
}

func (r *Repository) reportCorrupt(msg string, err error) {
	if r.config.Logger != nil {
		r.config.Logger.Warn(msg, "path", r.Path, "error", err)
	}
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}

func (r *Repository) recordLoad(loaded, skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastLoad = &now
	r.loadedNotes = loaded
	r.skipped = skipped
}

func (r *Repository) recordSave() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastSave = &now
}
