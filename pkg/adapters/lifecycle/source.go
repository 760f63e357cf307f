// Package lifecycle exposes store change events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/quicknote/pkg/core"
)

// Change is one burst of store events, delivered as a single lifecycle.Event.
// A single atomic save usually raises more than one filesystem event.
type Change struct {
	Path   string
	Type   core.EventType // type of the last event in the burst
	Events int
}

func (c Change) String() string {
	if c.Events > 1 {
		return fmt.Sprintf("%s %s (+%d)", c.Type, c.Path, c.Events-1)
	}
	return fmt.Sprintf("%s %s", c.Type, c.Path)
}

// Option configures a store source.
type Option func(*storeSource)

// WithSettle merges events that arrive less than d apart into one Change.
// Zero forwards every event on its own.
func WithSettle(d time.Duration) Option {
	return func(s *storeSource) {
		s.settle = d
	}
}

type storeSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	settle time.Duration
}

// NewSource creates a lifecycle.Source that emits a Change per store update.
// The output channel is closed once the input is closed or the context passed to Start is done.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &storeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.run)
	return nil
}

func (s *storeSource) run(ctx context.Context) error {
	defer close(s.out)

	var pending *Change
	var settled <-chan time.Time
	flush := func() bool {
		if pending == nil {
			return true
		}
		c := *pending
		pending, settled = nil, nil
		select {
		case s.out <- c:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-s.events:
			if !ok {
				flush()
				return nil
			}
			if pending == nil {
				pending = &Change{Path: e.Path}
			}
			pending.Type = e.Type
			pending.Events++
			if s.settle <= 0 {
				if !flush() {
					return nil
				}
				continue
			}
			settled = time.After(s.settle)
		case <-settled:
			if !flush() {
				return nil
			}
		}
	}
}
