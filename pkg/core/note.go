package core

import (
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Priority bounds. 0 means no priority, 3 is the most urgent.
const (
	PriorityNone    = 0
	PriorityHighest = 3
)

// TimeLayout is the textual form of CreatedAt written by this package.
const TimeLayout = time.RFC3339

// legacyTimeLayout is accepted on read for stores written without a UTC offset.
const legacyTimeLayout = "2006-01-02T15:04:05"

var validate = validator.New()

// Note is the central entity of the domain.
// It represents a short user-entered reminder identified by an ID.
// Only Done ever changes after creation.
type Note struct {
	ID        string   `json:"id" yaml:"id" validate:"required"`
	Text      string   `json:"text" yaml:"text" validate:"required"`
	CreatedAt string   `json:"created_at" yaml:"created_at" validate:"required"`
	Done      bool     `json:"done" yaml:"done"`
	Tags      []string `json:"tags" yaml:"tags" validate:"dive,required"`
	Priority  int      `json:"priority" yaml:"priority" validate:"min=0,max=3"`
}

// Validate checks the record rules: required fields present, text not
// blank, no empty tags and priority within [PriorityNone, PriorityHighest].
func (n Note) Validate() error {
	if err := validate.Struct(n); err != nil {
		return errors.Wrapf(ErrValidation, "note %q: %v", n.ID, err)
	}
	if strings.TrimSpace(n.Text) == "" {
		return errors.Wrapf(ErrValidation, "note %q: text is blank", n.ID)
	}
	return nil
}

// Matches reports whether pattern is found in the text or in any tag,
// ignoring case. An empty pattern matches every note.
func (n Note) Matches(pattern string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	rx, err := CompilePattern(pattern)
	if err != nil {
		return false, err
	}
	return n.matchRegexp(rx), nil
}

func (n Note) matchRegexp(rx *regexp.Regexp) bool {
	if rx == nil || rx.MatchString(n.Text) {
		return true
	}
	for _, t := range n.Tags {
		if rx.MatchString(t) {
			return true
		}
	}
	return false
}

// HasTag reports whether any tag matches the doublestar glob.
// An empty glob matches every note, including untagged ones.
func (n Note) HasTag(glob string) (bool, error) {
	if glob == "" {
		return true, nil
	}
	for _, t := range n.Tags {
		ok, err := doublestar.Match(glob, t)
		if err != nil {
			return false, errors.Wrapf(ErrInvalidPattern, "tag glob %q", glob)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// CompilePattern compiles a case-insensitive search pattern.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	rx, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPattern, "%q (%v)", pattern, err)
	}
	return rx, nil
}

// ValidateTagGlob rejects malformed tag globs before any store access.
func ValidateTagGlob(glob string) error {
	if glob != "" && !doublestar.ValidatePattern(glob) {
		return errors.Wrapf(ErrInvalidPattern, "tag glob %q", glob)
	}
	return nil
}

// Created parses CreatedAt.
func (n Note) Created() (time.Time, error) {
	return ParseTime(n.CreatedAt)
}

// AgeDays returns the whole days elapsed since creation.
// It is 0 when CreatedAt cannot be parsed, so one bad field never breaks a listing.
func (n Note) AgeDays(now time.Time) int {
	t, err := n.Created()
	if err != nil {
		return 0
	}
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// Marker renders the priority as exclamation marks, empty for PriorityNone.
func (n Note) Marker() string {
	switch n.Priority {
	case 1:
		return "(!)"
	case 2:
		return "(!!)"
	case 3:
		return "(!!!)"
	default:
		return ""
	}
}

// ParseTime accepts TimeLayout and the offset-less legacy layout (read as local time).
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(legacyTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unrecognized timestamp %q", s)
	}
	return t, nil
}

// NormalizeTags trims every tag and drops empty ones. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitTags parses a comma separated tag list as typed on the command line.
func SplitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}
