// Package ingest renders transcript PDFs into page images ready for
// vision extraction.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jackzampolin/registrar/internal/home"
)

// DefaultDPI is the render resolution. 300 DPI keeps course tables and
// small registrar print legible for the vision model.
const DefaultDPI = 300

// Request contains the parameters for ingesting a transcript.
type Request struct {
	PDFPaths []string     // PDF file paths (sorted by numeric suffix for multi-part scans)
	DPI      int          // Render resolution (default 300)
	Logger   *slog.Logger // Optional logger for progress updates
}

// Result contains the result of a successful ingest operation.
type Result struct {
	TranscriptID string
	Reference    string   // Human-readable label derived from the first PDF filename
	PageCount    int
	ImagePaths   []string // In page order
}

// Ingest renders all pages from the given PDFs into the transcript's
// source-images directory and returns the ordered image paths.
func Ingest(ctx context.Context, homeDir *home.Dir, req Request) (*Result, error) {
	log := req.Logger
	if log == nil {
		log = slog.Default()
	}
	dpi := req.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	if len(req.PDFPaths) == 0 {
		return nil, fmt.Errorf("no PDF paths provided")
	}
	for _, p := range req.PDFPaths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("PDF not found: %s", p)
		}
	}

	// Sort PDFs by numeric suffix (e.g., transcript-1.pdf, transcript-2.pdf)
	sortedPaths := sortPDFsByNumber(req.PDFPaths)
	transcriptID := uuid.New().String()
	reference := DeriveReference(sortedPaths[0])
	log.Info("starting ingest",
		"pdfs", len(sortedPaths), "transcript_id", transcriptID, "reference", reference)

	if err := homeDir.EnsureSourceImagesDir(transcriptID); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	outDir := homeDir.SourceImagesDir(transcriptID)

	pageCount := 0
	for i, pdfPath := range sortedPaths {
		log.Debug("rendering PDF", "file", filepath.Base(pdfPath), "part", i+1, "of", len(sortedPaths))
		count, err := renderPDF(ctx, pdfPath, outDir, pageCount, dpi)
		if err != nil {
			os.RemoveAll(outDir)
			return nil, fmt.Errorf("failed to render pages from %s: %w", pdfPath, err)
		}
		pageCount += count
	}

	if pageCount == 0 {
		os.RemoveAll(outDir)
		return nil, fmt.Errorf("no pages rendered from PDFs")
	}

	// Quality problems are advisory: a blurry page still goes to the model,
	// it just tends to extract less.
	imagePaths := homeDir.SourceImagePaths(transcriptID, pageCount)
	for i, p := range imagePaths {
		if err := ValidateImageQuality(p); err != nil {
			log.Warn("page image quality below threshold", "page", i+1, "reason", err)
		}
	}

	log.Info("ingest complete", "transcript_id", transcriptID, "pages", pageCount)

	return &Result{
		TranscriptID: transcriptID,
		Reference:    reference,
		PageCount:    pageCount,
		ImagePaths:   imagePaths,
	}, nil
}

// renderPDF renders all pages of one PDF to the output directory.
// pageOffset shifts output numbering for multi-part scans.
// Returns the number of pages rendered.
func renderPDF(ctx context.Context, pdfPath, outDir string, pageOffset, dpi int) (int, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}

	// Render pages concurrently
	maxWorkers := runtime.NumCPU()

	type result struct {
		pageNum int
		err     error
	}

	results := make(chan result, pageCount)
	sem := make(chan struct{}, maxWorkers)

	for page := 1; page <= pageCount; page++ {
		sem <- struct{}{} // acquire
		go func(pageInPDF int) {
			defer func() { <-sem }() // release

			if err := ctx.Err(); err != nil {
				results <- result{pageNum: pageInPDF, err: err}
				return
			}
			err := renderPage(pdfPath, outDir, pageInPDF, pageOffset+pageInPDF, dpi)
			results <- result{pageNum: pageInPDF, err: err}
		}(page)
	}

	for i := 0; i < pageCount; i++ {
		r := <-results
		if r.err != nil {
			return 0, fmt.Errorf("failed to render page %d: %w", r.pageNum, r.err)
		}
	}

	return pageCount, nil
}

// renderPage renders a single page from a PDF using pdftoppm (poppler-utils).
func renderPage(pdfPath, outDir string, pageInPDF, outputPageNum, dpi int) error {
	tmpDir, err := os.MkdirTemp("", "registrar-page-*")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPrefix := filepath.Join(tmpDir, "page")

	// -png: output PNG format
	// -f/-l N: single page to render
	// -r: resolution in DPI
	// -singlefile: don't add page number suffix
	pageStr := strconv.Itoa(pageInPDF)
	cmd := exec.Command("pdftoppm",
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", strconv.Itoa(dpi),
		"-singlefile",
		pdfPath,
		outputPrefix,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	srcPath := outputPrefix + ".png"
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read rendered image: %w", err)
	}

	dstPath := filepath.Join(outDir, fmt.Sprintf("page_%04d.png", outputPageNum))
	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write page image: %w", err)
	}

	return nil
}

// sortPDFsByNumber sorts PDF paths by their numeric suffix.
// e.g., ["t-2.pdf", "t-1.pdf", "t-10.pdf"] -> ["t-1.pdf", "t-2.pdf", "t-10.pdf"]
func sortPDFsByNumber(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)

	re := regexp.MustCompile(`-(\d+)\.pdf$`)

	sort.Slice(sorted, func(i, j int) bool {
		mi := re.FindStringSubmatch(sorted[i])
		mj := re.FindStringSubmatch(sorted[j])

		// If both have numbers, sort numerically
		if len(mi) > 1 && len(mj) > 1 {
			ni, _ := strconv.Atoi(mi[1])
			nj, _ := strconv.Atoi(mj[1])
			return ni < nj
		}

		// Files without numbers come first
		if len(mi) > 1 {
			return false
		}
		if len(mj) > 1 {
			return true
		}

		// Both without numbers: alphabetical
		return sorted[i] < sorted[j]
	})

	return sorted
}

// DeriveReference extracts a human-readable reference from a PDF filename,
// used when no student name is known yet.
// e.g., "doe-jane-transcript-1.pdf" -> "doe-jane-transcript"
func DeriveReference(pdfPath string) string {
	base := filepath.Base(pdfPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	re := regexp.MustCompile(`-\d+$`)
	return re.ReplaceAllString(name, "")
}
