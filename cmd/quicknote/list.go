package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/quicknote/pkg/core"
	"github.com/aretw0/quicknote/pkg/render"
)

type queryFlags struct {
	done bool
	tag  string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&q.done, "done", false, "Include done notes")
	cmd.Flags().StringVar(&q.tag, "tag", "", "Only notes with a tag matching this glob (e.g. 'work*')")
}

func (a *app) runQuery(cmd *cobra.Command, q core.Query) error {
	svc, err := a.service()
	if err != nil {
		return err
	}

	notes, err := svc.Find(cmd.Context(), q)
	if err != nil {
		return err
	}
	return render.Table(a.stdout, notes)
}

func newListCmd(a *app) *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending notes, most urgent first",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, core.Query{IncludeDone: q.done, Tag: q.tag})
		},
	}

	q.register(cmd)
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:     "search <pattern>",
		Short:   "Search notes by a case-insensitive regular expression over text and tags",
		Example: `  quicknote search 'milk|coffee' --done`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, core.Query{Pattern: args[0], IncludeDone: q.done, Tag: q.tag})
		},
	}

	q.register(cmd)
	return cmd
}
