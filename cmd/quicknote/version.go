package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknote"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of quicknote",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printf("quicknote version %s\n", strings.TrimSpace(quicknote.Version))
		},
	}
}
