package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/registrar/internal/api"
	"github.com/jackzampolin/registrar/internal/consolidate"
	"github.com/jackzampolin/registrar/internal/extract"
	"github.com/jackzampolin/registrar/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process <pdf> [pdf...]",
	Short: "Extract and consolidate a transcript from scanned PDFs",
	Long: `Process renders the given transcript PDFs to page images, extracts
structured data from each page with the configured vision model, and
consolidates the pages into one verified transcript record.

Multiple PDFs are treated as parts of one transcript and ordered by
their numeric filename suffix (scan-1.pdf, scan-2.pdf, ...).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, h, log, err := setup()
		if err != nil {
			return err
		}
		cfg := cm.Get()

		extractor := extract.NewOpenAIExtractor(extract.OpenAIConfig{
			APIKey:      cfg.ResolveAPIKey(),
			Model:       cfg.Extraction.Model,
			MaxTokens:   cfg.Extraction.MaxTokens,
			MaxRetries:  cfg.Extraction.MaxRetries,
			Timeout:     time.Duration(cfg.Extraction.TimeoutSeconds) * time.Second,
			Temperature: cfg.Extraction.Temperature,
			Logger:      log,
		})

		proc, err := pipeline.New(pipeline.Config{
			Extractor: extractor,
			HomeDir:   h,
			Logger:    log,
			Workers:   cfg.Extraction.Workers,
			DPI:       cfg.Ingest.DPI,
			Options: consolidate.Options{
				CreditEquivalence: cfg.Consolidation.CreditEquivalence,
				CreditTolerance:   cfg.Consolidation.CreditTolerance,
				GPATolerance:      cfg.Consolidation.GPATolerance,
			},
		})
		if err != nil {
			return err
		}

		result, err := proc.ProcessTranscript(cmd.Context(), args)
		if err != nil {
			return err
		}

		path, err := api.SaveRecord(h, result)
		if err != nil {
			return err
		}
		log.Info("record saved", "path", path)

		return api.Output(result)
	},
}
