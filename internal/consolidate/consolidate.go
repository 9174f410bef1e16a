// Package consolidate merges per-page transcript extractions into a single
// verified record. It is pure computation over in-memory values: no I/O, no
// retries, safe to call concurrently for independent transcripts.
package consolidate

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackzampolin/registrar/internal/types"
)

var (
	// ErrEmptyInput is returned when no pages are supplied.
	ErrEmptyInput = errors.New("no page extractions provided")

	// ErrDuplicatePage is returned when two pages carry the same page number.
	// This indicates an upstream extraction bug and is never silently repaired.
	ErrDuplicatePage = errors.New("duplicate page number")
)

// Options controls the equivalence and mismatch tolerances. The thresholds
// are configuration, not constants: registrars round credit hours and GPAs
// differently, so callers can widen them per institution.
type Options struct {
	// CreditEquivalence is the max difference between two credit values for
	// course occurrences to count as the same academic event.
	CreditEquivalence float64

	// CreditTolerance is the allowed gap between summed and declared credit
	// totals before the credit check flags a mismatch.
	CreditTolerance float64

	// GPATolerance is the allowed gap between the recomputed and declared
	// cumulative GPA before the GPA check flags a mismatch.
	GPATolerance float64

	// Logger receives per-page merge diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the standard tolerances.
func DefaultOptions() Options {
	return Options{
		CreditEquivalence: 0.01,
		CreditTolerance:   0.01,
		GPATolerance:      0.05,
	}
}

// Consolidate merges the given page extractions with default options.
func Consolidate(pages []types.PageExtraction) (*types.TranscriptRecord, error) {
	return ConsolidateWithOptions(pages, DefaultOptions())
}

// ConsolidateWithOptions merges the given page extractions into one
// transcript record. Pages are processed in ascending page-number order
// regardless of slice order. Structural problems (empty input, repeated
// page numbers) abort the whole consolidation; data-quality findings are
// recorded in the record's verification block and conflict log instead.
func ConsolidateWithOptions(pages []types.PageExtraction, opts Options) (*types.TranscriptRecord, error) {
	if len(pages) == 0 {
		return nil, ErrEmptyInput
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	ordered := make([]types.PageExtraction, len(pages))
	copy(ordered, pages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PageNumber < ordered[j].PageNumber
	})

	seen := make(map[int]struct{}, len(ordered))
	for _, p := range ordered {
		if _, ok := seen[p.PageNumber]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePage, p.PageNumber)
		}
		seen[p.PageNumber] = struct{}{}
	}

	log.Debug("consolidating pages", "pages", len(ordered))

	merged, conflicts := reconcileFields(ordered)
	courses, stats := dedupeCourses(ordered, opts, log)
	honors := mergeHonors(ordered)

	record := &types.TranscriptRecord{
		Student:     merged.Student,
		Institution: merged.Institution,
		GPASummary:  merged.GPASummary,
		Degree:      merged.Degree,
		Transfer:    merged.Transfer,
		Totals:      merged.Totals,
		Honors:      honors,
		Courses:     courses,
		Conflicts:   conflicts,
		PageCount:   len(ordered),
	}
	record.Verification = validate(record, opts)
	record.Verification.DuplicatesRemoved = stats.duplicatesRemoved
	record.Verification.RetakesKept = stats.retakesKept

	log.Info("consolidation complete",
		"pages", len(ordered),
		"courses", len(courses),
		"conflicts", len(conflicts),
		"completeness", record.Verification.CompletenessScore)

	return record, nil
}

// mergeHonors appends honors across pages in page order, dropping exact
// repeats (the same award often prints on both a term page and the summary).
func mergeHonors(pages []types.PageExtraction) []types.Honor {
	var honors []types.Honor
	seen := make(map[types.Honor]struct{})
	for _, p := range pages {
		for _, h := range p.Honors {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			honors = append(honors, h)
		}
	}
	return honors
}
