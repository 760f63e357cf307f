package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/quicknote/pkg/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add random sample notes",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("count") {
				count = a.cfg.SeedCount
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			added, err := seed.Seed(cmd.Context(), svc, count, nil)
			if len(added) > 0 {
				if perr := a.printf("added %d sample note(s)\n", len(added)); perr != nil && err == nil {
					err = perr
				}
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "Number of notes to add")
	return cmd
}
