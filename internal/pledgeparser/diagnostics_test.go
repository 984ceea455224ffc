package pledgeparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosePage(t *testing.T) {
	page := "Summary of pledges 5250031143286 carried forward\n" +
		"subtotal 100.00 and 25.50 remaining"

	diag := DiagnosePage(page)

	assert.Equal(t, 2, diag.AmountCount)
	assert.Equal(t, 1, diag.SequenceCount)
	assert.Len(t, diag.AmountContexts, 2)
	assert.Len(t, diag.SequenceContexts, 1)
	assert.Contains(t, diag.SequenceContexts[0], "5250031143286")
	assert.Contains(t, diag.AmountContexts[0], "100.00")
}

func TestDiagnosePageSnippetTruncated(t *testing.T) {
	page := strings.Repeat("lorem ipsum ", 100)
	diag := DiagnosePage(page)
	assert.Len(t, diag.Snippet, snippetLen)
}

func TestDiagnosePageContextWindowsCapped(t *testing.T) {
	page := strings.Repeat("9.99 ", 25)
	diag := DiagnosePage(page)
	assert.Equal(t, 25, diag.AmountCount)
	assert.Len(t, diag.AmountContexts, maxContexts)
}

func TestDiagnosePageEmpty(t *testing.T) {
	diag := DiagnosePage("")
	assert.Equal(t, 0, diag.AmountCount)
	assert.Equal(t, 0, diag.SequenceCount)
	assert.Empty(t, diag.Snippet)
}
