// Package pipeline orchestrates the end-to-end transcript flow: PDF
// rendering, per-page vision extraction, and consolidation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/jackzampolin/registrar/internal/consolidate"
	"github.com/jackzampolin/registrar/internal/extract"
	"github.com/jackzampolin/registrar/internal/home"
	"github.com/jackzampolin/registrar/internal/ingest"
	"github.com/jackzampolin/registrar/internal/types"
)

// Config for creating a Processor. The extractor is injected here rather
// than reached through any ambient client state.
type Config struct {
	Extractor extract.Extractor
	HomeDir   *home.Dir
	Logger    *slog.Logger
	Options   consolidate.Options // Consolidation tolerances
	Workers   int                 // Concurrent page extractions (default 4)
	DPI       int                 // Render resolution (default ingest.DefaultDPI)
}

// Processor runs the full transcript pipeline.
type Processor struct {
	extractor extract.Extractor
	homeDir   *home.Dir
	log       *slog.Logger
	opts      consolidate.Options
	workers   int
	dpi       int
}

// Result is the outcome of processing one transcript.
type Result struct {
	TranscriptID   string                  `json:"transcript_id"`
	Reference      string                  `json:"reference,omitempty"`
	Record         *types.TranscriptRecord `json:"record"`
	TotalPages     int                     `json:"total_pages"`
	PagesProcessed int                     `json:"pages_processed"`
	PagesFailed    []int                   `json:"pages_failed,omitempty"`
	Usage          types.Usage             `json:"usage"`
}

// New creates a Processor. Extractor and HomeDir are required.
func New(cfg Config) (*Processor, error) {
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if cfg.HomeDir == nil {
		return nil, fmt.Errorf("home directory is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Options.CreditEquivalence == 0 && cfg.Options.CreditTolerance == 0 && cfg.Options.GPATolerance == 0 {
		cfg.Options = consolidate.DefaultOptions()
	}
	cfg.Options.Logger = cfg.Logger

	return &Processor{
		extractor: cfg.Extractor,
		homeDir:   cfg.HomeDir,
		log:       cfg.Logger,
		opts:      cfg.Options,
		workers:   cfg.Workers,
		dpi:       cfg.DPI,
	}, nil
}

// ProcessTranscript runs the complete pipeline for one transcript's PDFs.
// Pages whose extraction fails after the extractor's own retries are logged
// and omitted from consolidation; structural consolidation failures abort
// with no record.
func (p *Processor) ProcessTranscript(ctx context.Context, pdfPaths []string) (*Result, error) {
	ing, err := ingest.Ingest(ctx, p.homeDir, ingest.Request{
		PDFPaths: pdfPaths,
		DPI:      p.dpi,
		Logger:   p.log,
	})
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}

	pages, failed, usage := p.extractPages(ctx, ing)
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages extracted from %d-page transcript", ing.PageCount)
	}

	// The pool finishes pages out of order; the consolidator contract
	// requires ascending page numbers.
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})

	record, err := consolidate.ConsolidateWithOptions(pages, p.opts)
	if err != nil {
		return nil, fmt.Errorf("consolidation failed: %w", err)
	}

	p.log.Info("transcript processed",
		"transcript_id", ing.TranscriptID,
		"reference", ing.Reference,
		"pages", ing.PageCount,
		"pages_failed", len(failed),
		"courses", len(record.Courses),
		"cost_usd", usage.CostUSD)

	return &Result{
		TranscriptID:   ing.TranscriptID,
		Reference:      ing.Reference,
		Record:         record,
		TotalPages:     ing.PageCount,
		PagesProcessed: len(pages),
		PagesFailed:    failed,
		Usage:          usage,
	}, nil
}

// extractPages runs per-page extraction with a bounded worker pool and
// returns successful extractions, the failed page numbers, and summed usage.
func (p *Processor) extractPages(ctx context.Context, ing *ingest.Result) ([]types.PageExtraction, []int, types.Usage) {
	var (
		mu     sync.Mutex
		pages  []types.PageExtraction
		failed []int
		usage  types.Usage
	)

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, imagePath := range ing.ImagePaths {
		pageNum := i + 1
		wg.Add(1)
		sem <- struct{}{} // acquire
		go func(pageNum int, imagePath string) {
			defer wg.Done()
			defer func() { <-sem }() // release

			page, err := p.extractPage(ctx, imagePath, pageNum, ing.PageCount)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.log.Warn("page extraction failed", "page", pageNum, "error", err)
				failed = append(failed, pageNum)
				return
			}
			if page.Usage != nil {
				usage.PromptTokens += page.Usage.PromptTokens
				usage.CompletionTokens += page.Usage.CompletionTokens
				usage.TotalTokens += page.Usage.TotalTokens
				usage.CostUSD += page.Usage.CostUSD
			}
			pages = append(pages, *page)
		}(pageNum, imagePath)
	}

	wg.Wait()
	sort.Ints(failed)
	return pages, failed, usage
}

func (p *Processor) extractPage(ctx context.Context, imagePath string, pageNum, totalPages int) (*types.PageExtraction, error) {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read page image: %w", err)
	}
	return p.extractor.ExtractPage(ctx, image, pageNum, totalPages)
}
