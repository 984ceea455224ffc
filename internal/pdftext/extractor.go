// Package pdftext extracts plain text from PDF documents, one string per page.
package pdftext

// Extractor defines the interface for extracting per-page text from a PDF
// document. The interface allows dependency injection so the pipeline can be
// tested without real PDF files.
type Extractor interface {
	// ExtractPages returns the text content of each page of the document at
	// path, in page order. A page that yields no text (e.g. a scanned image)
	// is returned as an empty string, not an error.
	ExtractPages(path string) ([]string, error)
}

// MockExtractor implements Extractor for testing purposes. It returns
// predefined pages keyed by file path, or the default pages when the path
// is unknown.
type MockExtractor struct {
	Pages   map[string][]string
	Default []string
	Err     error
}

// NewMockExtractor creates a MockExtractor that returns the given pages for
// every path.
func NewMockExtractor(pages []string, err error) *MockExtractor {
	return &MockExtractor{Default: pages, Err: err}
}

// ExtractPages returns the predefined pages or error.
func (m *MockExtractor) ExtractPages(path string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if pages, ok := m.Pages[path]; ok {
		return pages, nil
	}
	return m.Default, nil
}
