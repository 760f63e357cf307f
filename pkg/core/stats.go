package core

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
)

// Statistics aggregates the whole collection.
type Statistics struct {
	Total           int       `json:"total"`
	Pending         int       `json:"pending"`
	Done            int       `json:"done"`
	HighestPriority int       `json:"highest_priority"`
	Tags            TagCounts `json:"tags"`
}

// TagCount is the number of notes carrying Tag.
type TagCount struct {
	Tag   string
	Count int
}

// TagCounts is ordered by descending count, then ascending tag.
// It marshals to a JSON object that keeps that order.
type TagCounts []TagCount

// MarshalJSON implements json.Marshaler.
func (tc TagCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range tc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Tag)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the count for tag, 0 when absent.
func (tc TagCounts) Get(tag string) int {
	for _, c := range tc {
		if c.Tag == tag {
			return c.Count
		}
	}
	return 0
}

// Summarize computes Statistics over notes.
func Summarize(notes []Note) Statistics {
	s := Statistics{Total: len(notes), Tags: TagCounts{}}
	byTag := make(map[string]int)
	for _, n := range notes {
		if n.Done {
			s.Done++
		}
		s.HighestPriority = max(s.HighestPriority, n.Priority)
		for _, t := range n.Tags {
			byTag[t]++
		}
	}
	s.Pending = s.Total - s.Done

	for tag, count := range byTag {
		s.Tags = append(s.Tags, TagCount{Tag: tag, Count: count})
	}
	slices.SortFunc(s.Tags, func(a, b TagCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Tag, b.Tag)
	})
	return s
}
