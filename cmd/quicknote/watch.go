package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknote/pkg/adapters/lifecycle"
	"github.com/aretw0/quicknote/pkg/core"
)

// watchSettle merges the events of one atomic save into a single redraw.
const watchSettle = 50 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the note table again every time the store file changes",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := core.Query{IncludeDone: q.done, Tag: q.tag}

			svc, err := a.service()
			if err != nil {
				return err
			}

			events, err := svc.Watch(ctx)
			if err != nil {
				return err
			}
			src := lifecycle.NewSource(events, lifecycle.WithSettle(watchSettle))
			if err := src.Start(ctx); err != nil {
				return err
			}

			if err := a.runQuery(cmd, query); err != nil {
				return err
			}
			for ev := range src.Events() {
				a.logger.Debug("store changed", "event", ev.String())
				if err := a.printf("\n"); err != nil {
					return err
				}
				if err := a.runQuery(cmd, query); err != nil {
					return err
				}
			}
			return ctx.Err()
		},
	}

	q.register(cmd)
	return cmd
}
