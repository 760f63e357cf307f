package platform

import (
	"context"

	"github.com/pkg/errors"

	"github.com/aretw0/quicknote/pkg/adapters/fs"
	"github.com/aretw0/quicknote/pkg/core"
)

// Init prepares the store at path and returns it as a core.Repository.
// Nothing is written: a store file that does not exist yet is an empty collection.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}

	repo, err := initFS(path, o)
	if err != nil {
		return nil, err
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, errors.Wrapf(err, "failed to initialize store %s", repo.Path)
	}
	return repo, nil
}

// initFS resolves the store path and builds the file repository.
func initFS(path string, o *options) (*fs.Repository, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}

	// Read-only access is inherently safe.
	bypassSafety := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolved := ResolveStorePath(path, useTemp)

	if o.logger != nil {
		switch {
		case useTemp && resolved != path:
			o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", path, "resolved_path", resolved)
		case IsDevRun() && o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case IsDevRun() && !o.devSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}

	repo := fs.NewRepository(fs.Config{
		Path:         resolved,
		Logger:       o.logger,
		ReadOnly:     o.readOnly,
		ErrorHandler: o.errorHandler,
	})
	if o.serializer != nil {
		repo.RegisterSerializer(o.serializer)
	}
	return repo, nil
}
