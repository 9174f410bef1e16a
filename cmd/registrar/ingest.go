package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/registrar/internal/api"
	"github.com/jackzampolin/registrar/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <pdf> [pdf...]",
	Short: "Render transcript PDFs to page images without extracting",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, h, log, err := setup()
		if err != nil {
			return err
		}

		result, err := ingest.Ingest(cmd.Context(), h, ingest.Request{
			PDFPaths: args,
			DPI:      cm.Get().Ingest.DPI,
			Logger:   log,
		})
		if err != nil {
			return err
		}

		return api.Output(result)
	},
}
