package main

import (
	"github.com/spf13/cobra"
)

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a note as done",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			found, err := svc.MarkDone(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return a.printf("not found: %s\n", args[0])
			}
			return a.printf("done: %s\n", args[0])
		},
	}
}

func newClearDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-done",
		Short: "Delete every done note",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			removed, err := svc.ClearDone(cmd.Context())
			if err != nil {
				return err
			}
			return a.printf("removed %d done note(s)\n", removed)
		},
	}
}
