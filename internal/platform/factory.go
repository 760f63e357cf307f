package platform

import (
	"github.com/aretw0/quicknote/pkg/core"
)

// New opens the store at path and returns the note service on top of it.
//
//	svc, err := quicknote.New("~/.quicknotes.json", quicknote.WithReadOnly(true))
func New(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(repo, o.serviceOpts...), nil
}
