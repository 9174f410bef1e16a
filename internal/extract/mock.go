package extract

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackzampolin/registrar/internal/types"
)

const MockExtractorName = "mock"

// MockExtractor is an Extractor for testing.
type MockExtractor struct {
	// Configurable behavior
	Latency   time.Duration
	Pages     map[int]*types.PageExtraction // page number -> canned result
	FailPages map[int]bool                  // page numbers that always fail
	Err       error                         // error returned for failing pages

	// State
	requestCount atomic.Int64
}

// NewMockExtractor creates a mock extractor with sensible defaults.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{
		Pages:     make(map[int]*types.PageExtraction),
		FailPages: make(map[int]bool),
	}
}

// Name returns the extractor identifier.
func (m *MockExtractor) Name() string {
	return MockExtractorName
}

// RequestCount returns how many extraction calls have been made.
func (m *MockExtractor) RequestCount() int64 {
	return m.requestCount.Load()
}

// ExtractPage returns the canned result for pageNum, or an empty extraction
// when none is registered.
func (m *MockExtractor) ExtractPage(ctx context.Context, image []byte, pageNum, totalPages int) (*types.PageExtraction, error) {
	m.requestCount.Add(1)

	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.FailPages[pageNum] {
		if m.Err != nil {
			return nil, m.Err
		}
		return nil, fmt.Errorf("mock extraction failure for page %d", pageNum)
	}

	if page, ok := m.Pages[pageNum]; ok {
		cp := *page
		cp.PageNumber = pageNum
		return &cp, nil
	}
	return &types.PageExtraction{PageNumber: pageNum, Model: MockExtractorName}, nil
}
