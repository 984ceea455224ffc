package pledgeparser

import (
	"regexp"
)

var (
	amountToken   = regexp.MustCompile(`\d+\.\d{2}`)
	sequenceToken = regexp.MustCompile(`\d{13}`)
)

const (
	snippetLen         = 300
	maxContexts        = 10
	amountContextLen   = 50
	sequenceContextLen = 20
)

// PageDiagnostics describes why a page produced no matches, to aid manual
// pattern tuning. It reports a snippet of the flattened page text and context
// windows around tokens that look like sequence numbers or amounts.
type PageDiagnostics struct {
	Snippet          string
	AmountCount      int
	SequenceCount    int
	AmountContexts   []string
	SequenceContexts []string
}

// DiagnosePage builds diagnostics for a page where no line matched.
func DiagnosePage(text string) PageDiagnostics {
	flat := NormalizeLine(text)

	snippet := flat
	if len(snippet) > snippetLen {
		snippet = snippet[:snippetLen]
	}

	amounts := amountToken.FindAllStringIndex(flat, -1)
	sequences := sequenceToken.FindAllStringIndex(flat, -1)

	return PageDiagnostics{
		Snippet:          snippet,
		AmountCount:      len(amounts),
		SequenceCount:    len(sequences),
		AmountContexts:   contextWindows(flat, amounts, amountContextLen),
		SequenceContexts: contextWindows(flat, sequences, sequenceContextLen),
	}
}

// contextWindows returns up to maxContexts excerpts of text surrounding each
// token location by margin characters on each side.
func contextWindows(text string, locations [][]int, margin int) []string {
	var windows []string
	for i, loc := range locations {
		if i >= maxContexts {
			break
		}
		start := loc[0] - margin
		if start < 0 {
			start = 0
		}
		end := loc[1] + margin
		if end > len(text) {
			end = len(text)
		}
		windows = append(windows, "..."+text[start:end]+"...")
	}
	return windows
}
