// Package export renders a note collection as text.
//
// Two formats are recognized: a Markdown checklist meant for humans and a
// structured document that is byte-compatible with the JSON store, so an
// export can be copied over the store file and loaded back.
package export

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/aretw0/quicknote/pkg/adapters/fs"
	"github.com/aretw0/quicknote/pkg/core"
)

// Format names an export format.
type Format string

const (
	Markdown   Format = "markdown"
	Structured Format = "structured"
)

// Formats lists the canonical format names.
var Formats = []Format{Markdown, Structured}

var aliases = map[string]Format{
	"markdown":   Markdown,
	"md":         Markdown,
	"structured": Structured,
	"json":       Structured,
}

// ParseFormat resolves a format name or one of its aliases (md, json).
func ParseFormat(name string) (Format, error) {
	if f, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return "", errors.Wrapf(core.ErrUnsupportedFormat, "%q (want one of %s)", name, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Render returns notes in the requested format. The input slice is not modified.
func Render(notes []core.Note, format Format) (string, error) {
	switch format {
	case Markdown:
		return renderMarkdown(notes), nil
	case Structured:
		data, err := fs.NewJSONSerializer().Encode(notes)
		if err != nil {
			return "", errors.Wrap(err, "failed to encode notes")
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	default:
		return "", errors.Wrapf(core.ErrUnsupportedFormat, "%q", format)
	}
}

// renderMarkdown writes a checklist with pending notes first, then by
// descending priority and ascending creation time.
func renderMarkdown(notes []core.Note) string {
	sorted := slices.Clone(notes)
	slices.SortStableFunc(sorted, func(a, b core.Note) int {
		if a.Done != b.Done {
			if a.Done {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return core.CompareCreated(a, b)
	})

	var sb strings.Builder
	sb.WriteString("# QuickNotes\n")
	for _, n := range sorted {
		check := " "
		if n.Done {
			check = "x"
		}

		sb.WriteString("\n- [" + check + "] ")
		if m := n.Marker(); m != "" {
			sb.WriteString("**" + m + "** ")
		}
		sb.WriteString(n.Text)
		fmt.Fprintf(&sb, "  \n  _%s_ · %s", n.ID, n.CreatedAt)
		for _, t := range n.Tags {
			sb.WriteString(" `" + t + "`")
		}
	}
	return sb.String()
}
