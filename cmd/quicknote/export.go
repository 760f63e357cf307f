package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/quicknote/pkg/export"
)

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every note as a Markdown checklist or a structured document",
		Example: `  quicknote export > notes.md
  quicknote export --format structured > backup.json`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.ExportFormat
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			notes, err := svc.ListNotes(cmd.Context())
			if err != nil {
				return err
			}

			out, err := export.Render(notes, f)
			if err != nil {
				return err
			}
			return a.printf("%s\n", out)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(export.Markdown), "Output format: markdown (md) or structured (json)")
	return cmd
}
