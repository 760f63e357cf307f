package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknote"
)

type infoReport struct {
	Version      string `json:"version"`
	ConfigSource string `json:"config_source,omitempty"`
	DevRun       bool   `json:"dev_run"`
	Component    string `json:"component"`
	State        any    `json:"state"`
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the resolved configuration and store state as JSON",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			// Load once so the store counters are populated.
			if _, err := svc.ListNotes(cmd.Context()); err != nil {
				return err
			}

			return writeJSON(a, infoReport{
				Version:      strings.TrimSpace(quicknote.Version),
				ConfigSource: a.cfg.Source,
				DevRun:       quicknote.IsDevRun(),
				Component:    svc.ComponentType(),
				State:        svc.State(),
			})
		},
	}
}
