package core

import (
	"cmp"
	"context"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Service handles the business logic for notes.
// Every operation loads the collection fresh from the repository; mutators
// write the whole collection back.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID IDGenerator
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the ID source. Collisions are still detected and retried.
func WithIDGenerator(gen IDGenerator) ServiceOption {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:  repo,
		now:   time.Now,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query selects notes for Find.
type Query struct {
	Pattern     string // case-insensitive regexp over text and tags
	IncludeDone bool
	Tag         string // doublestar glob over tags
}

// Add validates and appends a new note, returning it.
func (s *Service) Add(ctx context.Context, text string, tags []string, priority int) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, errors.Wrap(ErrValidation, "note text cannot be empty")
	}
	if priority < PriorityNone || priority > PriorityHighest {
		return Note{}, errors.Wrapf(ErrValidation, "priority %d is outside %d-%d", priority, PriorityNone, PriorityHighest)
	}

	notes, err := s.repo.Load(ctx)
	if err != nil {
		return Note{}, err
	}

	id, err := s.uniqueID(notes)
	if err != nil {
		return Note{}, err
	}

	note := Note{
		ID:        id,
		Text:      text,
		CreatedAt: s.now().Format(TimeLayout),
		Tags:      NormalizeTags(tags),
		Priority:  priority,
	}

	if err := s.save(ctx, append(notes, note)); err != nil {
		return Note{}, err
	}
	return note, nil
}

func (s *Service) uniqueID(notes []Note) (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		taken := slices.ContainsFunc(notes, func(n Note) bool { return n.ID == id })
		if id != "" && !taken {
			return id, nil
		}
	}
	return "", errors.Errorf("could not generate a unique note id after %d attempts", maxIDAttempts)
}

// MarkDone flags the note with the given id as done.
// It reports false, not an error, when no note has that id.
func (s *Service) MarkDone(ctx context.Context, id string) (bool, error) {
	notes, err := s.repo.Load(ctx)
	if err != nil {
		return false, err
	}

	for i := range notes {
		if notes[i].ID == id {
			notes[i].Done = true
			if err := s.save(ctx, notes); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// ClearDone removes every done note and returns how many were removed.
// Nothing is written when there is nothing to remove.
func (s *Service) ClearDone(ctx context.Context) (int, error) {
	notes, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}

	before := len(notes)
	notes = slices.DeleteFunc(notes, func(n Note) bool { return n.Done })
	removed := before - len(notes)
	if removed == 0 {
		return 0, nil
	}

	if err := s.save(ctx, notes); err != nil {
		return 0, err
	}
	return removed, nil
}

// Search returns the notes matching pattern, skipping done ones unless
// includeDone is set, in display order (see SortNotes).
func (s *Service) Search(ctx context.Context, pattern string, includeDone bool) ([]Note, error) {
	return s.Find(ctx, Query{Pattern: pattern, IncludeDone: includeDone})
}

// Find is Search with the full set of filters.
func (s *Service) Find(ctx context.Context, q Query) ([]Note, error) {
	var rx *regexp.Regexp
	if q.Pattern != "" {
		var err error
		if rx, err = CompilePattern(q.Pattern); err != nil {
			return nil, err
		}
	}
	if err := ValidateTagGlob(q.Tag); err != nil {
		return nil, err
	}

	notes, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.Done && !q.IncludeDone {
			continue
		}
		if !n.matchRegexp(rx) {
			continue
		}
		ok, err := n.HasTag(q.Tag)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, n)
		}
	}

	SortNotes(result)
	return result, nil
}

// ListNotes returns the collection exactly as stored.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	return s.repo.Load(ctx)
}

// Stats aggregates the whole collection.
func (s *Service) Stats(ctx context.Context) (Statistics, error) {
	notes, err := s.repo.Load(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return Summarize(notes), nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}

// save refuses to write once ctx is cancelled so an interrupt leaves the store untouched.
func (s *Service) save(ctx context.Context, notes []Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.repo.Save(ctx, notes)
}

// SortNotes orders notes by descending priority, then ascending creation time.
// The sort is stable: equal keys keep their load order.
func SortNotes(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return CompareCreated(a, b)
	})
}

// CompareCreated orders two notes by CreatedAt. Parseable timestamps come
// first, ordered by instant; unparseable ones follow, ordered by raw string.
func CompareCreated(a, b Note) int {
	ta, errA := a.Created()
	tb, errB := b.Created()
	switch {
	case errA == nil && errB == nil:
		return ta.Compare(tb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(a.CreatedAt, b.CreatedAt)
}
