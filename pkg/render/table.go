// Package render prints notes as a plain-text table for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/quicknote/pkg/core"
)

const (
	idWidth       = core.IDLength
	priorityWidth = 3
	statusWidth   = 6
	minTextWidth  = 30
	maxTextWidth  = 80
)

// Empty is printed instead of a table when there is nothing to show.
const Empty = "(no notes)"

// Table writes notes one row each, wrapping long text onto continuation
// lines. The text column is as wide as the longest text, clamped to [30, 80].
func Table(w io.Writer, notes []core.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, Empty)
		return err
	}

	tw := textWidth(notes)
	head := fmt.Sprintf("%s  %s  %s  %s  Tags",
		pad("ID", idWidth), pad("P", priorityWidth), pad("Status", statusWidth), pad("Note", tw))

	var sb strings.Builder
	sb.WriteString(head + "\n")
	sb.WriteString(strings.Repeat("-", utf8.RuneCountInString(head)) + "\n")

	for _, n := range notes {
		status := "todo"
		if n.Done {
			status = "done"
		}
		for i, line := range Wrap(n.Text, tw) {
			if i == 0 {
				fmt.Fprintf(&sb, "%s  %s  %s  %s  %s\n",
					pad(n.ID, idWidth), pad(strconv.Itoa(n.Priority), priorityWidth),
					pad(status, statusWidth), pad(line, tw), strings.Join(n.Tags, ","))
				continue
			}
			fmt.Fprintf(&sb, "%s  %s  %s  %s\n",
				pad("", idWidth), pad("", priorityWidth), pad("", statusWidth), strings.TrimRight(pad(line, tw), " "))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func textWidth(notes []core.Note) int {
	longest := 0
	for _, n := range notes {
		longest = max(longest, utf8.RuneCountInString(n.Text))
	}
	return min(maxTextWidth, max(minTextWidth, longest))
}

// Wrap breaks s into lines of at most width runes, splitting on whitespace
// and hard-splitting words longer than width. It always returns at least one line.
func Wrap(s string, width int) []string {
	var lines []string
	var cur []rune

	flush := func() {
		lines = append(lines, string(cur))
		cur = cur[:0]
	}

	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				flush()
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		if len(w) == 0 {
			continue
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= width:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			flush()
			cur = append(cur, w...)
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// pad left-aligns s in a column of width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
