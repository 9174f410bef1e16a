// Package extract implements the per-page vision extraction collaborator.
// It owns everything network-shaped: the model call, retries, response
// recovery, and schema validation. The consolidation engine only ever sees
// the PageExtraction values this package produces.
package extract

import (
	"context"

	"github.com/jackzampolin/registrar/internal/types"
)

// Extractor extracts structured transcript data from a single page image.
// Implementations handle their own transient retries and return a validated
// result or an error; callers never retry on top of this boundary.
type Extractor interface {
	// ExtractPage extracts structured data from one page image (PNG bytes).
	// pageNum is 1-based; totalPages gives the model document context.
	ExtractPage(ctx context.Context, image []byte, pageNum, totalPages int) (*types.PageExtraction, error)

	// Name returns the extractor identifier (e.g. "openai").
	Name() string
}
