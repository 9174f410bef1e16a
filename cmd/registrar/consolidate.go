package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/registrar/internal/api"
	"github.com/jackzampolin/registrar/internal/consolidate"
	"github.com/jackzampolin/registrar/internal/types"
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate <pages.json> [pages.json...]",
	Short: "Consolidate already-extracted page JSON into one record",
	Long: `Consolidate merges previously extracted page JSON files into a single
verified transcript record without calling the extraction provider.

Each file may contain either a single page object or an array of page
objects. Pages from all files are combined before consolidation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, _, log, err := setup()
		if err != nil {
			return err
		}
		cfg := cm.Get()

		var pages []types.PageExtraction
		for _, path := range args {
			loaded, err := loadPages(path)
			if err != nil {
				return err
			}
			pages = append(pages, loaded...)
		}

		opts := consolidate.Options{
			CreditEquivalence: cfg.Consolidation.CreditEquivalence,
			CreditTolerance:   cfg.Consolidation.CreditTolerance,
			GPATolerance:      cfg.Consolidation.GPATolerance,
			Logger:            log,
		}
		record, err := consolidate.ConsolidateWithOptions(pages, opts)
		if err != nil {
			return err
		}

		return api.Output(record)
	},
}

// loadPages reads one page file, accepting a single object or an array.
func loadPages(path string) ([]types.PageExtraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page file %s: %w", path, err)
	}

	var pages []types.PageExtraction
	if err := json.Unmarshal(data, &pages); err == nil {
		return pages, nil
	}

	var page types.PageExtraction
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to parse page file %s: %w", path, err)
	}
	return []types.PageExtraction{page}, nil
}
