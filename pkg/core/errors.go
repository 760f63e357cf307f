package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	// ErrValidation marks invalid user input. It is reported before any load or save.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidPattern is returned when a search pattern or tag glob does not compile.
	ErrInvalidPattern = errors.WithMessage(ErrValidation, "invalid pattern")

	// ErrUnsupportedFormat is returned when an export format is not recognized.
	ErrUnsupportedFormat = errors.WithMessage(ErrValidation, "unsupported format")

	// ErrStoreCorrupt is reported (never returned) when the store cannot be parsed.
	ErrStoreCorrupt = errors.New("note store is corrupt")

	// ErrIO is the target for errors.Is on any failed store write.
	ErrIO = errors.New("note store write failed")

	// ErrReadOnly is returned by writes when the store is opened read-only.
	ErrReadOnly = errors.New("note store is in read-only mode")
)

// IOError records a failed filesystem operation while saving the store.
// The canonical file is left untouched when it is returned.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is makes every IOError match ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }
