package pdftext

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// RealExtractor implements Extractor against actual PDF files. It first tries
// the ledongthuc/pdf library, which keeps everything in-process, and falls
// back to the external pdftotext command (poppler-utils) when the library
// fails or produces no text at all.
type RealExtractor struct{}

// NewRealExtractor creates a new RealExtractor instance.
func NewRealExtractor() *RealExtractor {
	return &RealExtractor{}
}

// ExtractPages extracts the text of each page of the PDF at path.
func (e *RealExtractor) ExtractPages(path string) ([]string, error) {
	pages, libErr := extractWithLibrary(path)
	if libErr == nil && totalTextLen(pages) > 0 {
		return pages, nil
	}

	pages, popplerErr := extractWithPdftotext(path)
	if popplerErr == nil {
		return pages, nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("pdf text extraction failed: %w", libErr)
	}
	return nil, fmt.Errorf("pdf text extraction failed: %w", popplerErr)
}

// extractWithLibrary reads per-page text with ledongthuc/pdf. The library is
// known to panic on some malformed documents, so recover converts that into
// an error.
func extractWithLibrary(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer func() {
		_ = f.Close()
	}()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			pages = append(pages, "")
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages, nil
}

// extractWithPdftotext extracts each page separately with the external
// pdftotext command, preserving page boundaries.
func extractWithPdftotext(path string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	numPages := pageCount(path)

	var pages []string
	for i := 1; i <= numPages; i++ {
		pageStr := strconv.Itoa(i)
		out, err := exec.Command("pdftotext", "-layout", "-f", pageStr, "-l", pageStr, path, "-").Output()
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(string(out)))
	}

	if totalTextLen(pages) == 0 {
		out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
		if err != nil {
			return nil, fmt.Errorf("pdftotext failed: %w", err)
		}
		return []string{strings.TrimSpace(string(out))}, nil
	}

	return pages, nil
}

// pageCount asks pdfinfo for the page count, defaulting to 1.
func pageCount(path string) int {
	out, err := exec.Command("pdfinfo", path).Output()
	if err != nil {
		return 1
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "Pages:") {
			n, parseErr := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
			if parseErr == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
