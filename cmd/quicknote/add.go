package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknote/pkg/core"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		tags     string
		priority int
	)

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a new note",
		Example: `  quicknote add "buy milk" -t errand,urgent -p 2
  quicknote add call mom`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			note, err := svc.Add(cmd.Context(), strings.Join(args, " "), core.SplitTags(tags), priority)
			if err != nil {
				return err
			}
			return a.printf("added: %s\n", strings.Join(nonEmpty(note.ID, note.Marker(), note.Text), " "))
		},
	}

	cmd.Flags().StringVarP(&tags, "tags", "t", "", "Comma separated tags (e.g. work,urgent)")
	cmd.Flags().IntVarP(&priority, "priority", "p", core.PriorityNone, "Priority from 0 (none) to 3 (highest)")
	return cmd
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
