package pdftext

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockExtractorDefaultPages(t *testing.T) {
	mock := NewMockExtractor([]string{"page one", "page two"}, nil)

	pages, err := mock.ExtractPages("any.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"page one", "page two"}, pages)
}

func TestMockExtractorPerPathPages(t *testing.T) {
	mock := &MockExtractor{
		Pages: map[string][]string{
			"a.pdf": {"alpha"},
			"b.pdf": {"beta", ""},
		},
		Default: []string{"fallback"},
	}

	pages, err := mock.ExtractPages("a.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, pages)

	pages, err = mock.ExtractPages("b.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", ""}, pages, "empty pages are preserved, not errors")

	pages, err = mock.ExtractPages("other.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"fallback"}, pages)
}

func TestMockExtractorError(t *testing.T) {
	mock := NewMockExtractor(nil, errors.New("corrupt file"))
	_, err := mock.ExtractPages("broken.pdf")
	assert.Error(t, err)
}

func TestRealExtractorMissingFile(t *testing.T) {
	extractor := NewRealExtractor()
	_, err := extractor.ExtractPages("definitely-missing.pdf")
	assert.Error(t, err)
}
