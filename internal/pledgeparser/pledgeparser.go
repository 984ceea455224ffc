// Package pledgeparser recovers structured donation transaction records from
// lines of text extracted from PDF pledge reports.
package pledgeparser

import (
	"regexp"
	"strings"

	"fjacquet/pledge-extract/internal/models"

	"github.com/shopspring/decimal"
)

// linePattern matches one transaction on a whitespace-normalized line, e.g.
//
//	5250031143286 JAMES ROBERT BOYD 2727 Check 100.00 4600055
//
// Fields: 13-digit sequence, donor name (non-greedy, ends right before the
// next numeric token), check number, payment type, amount with exactly two
// decimals, and a trailing batch number that is captured and discarded.
//
// Known limitation: because the name group is non-greedy, a name containing
// embedded digit runs shaped like check-number/amount/batch tokens truncates
// early. The source report format does not disambiguate this, so neither do we.
var linePattern = regexp.MustCompile(
	`(\d{13})\s+(.*?)\s+(\d{1,10})\s+(Check|Cash|Card|ACH)\s+(\d+\.\d{2})\s+(\d+)`)

// labelPattern matches a book label written as "GN1", "GN-2" or "GN 3",
// case-insensitively.
var labelPattern = regexp.MustCompile(`(?i)\bGN\s*[- ]?([1-7])\b`)

// whitespaceRun collapses runs of whitespace during line normalization.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Options carries the extraction policy. These are explicit parameters rather
// than package-level configuration so both policy settings are testable.
type Options struct {
	// PledgeEqualsPayment copies the payment amount into the pledge amount.
	PledgeEqualsPayment bool
	// DefaultPercentage is stamped on every record.
	DefaultPercentage int
	// DefaultBookLabel is injected when no label is detected on the line.
	DefaultBookLabel string
}

// DefaultOptions returns the stock policy: pledge mirrors payment, 100
// percent, GN1 when no label is present.
func DefaultOptions() Options {
	return Options{
		PledgeEqualsPayment: true,
		DefaultPercentage:   100,
		DefaultBookLabel:    "GN1",
	}
}

// NormalizeLine collapses whitespace runs to single spaces and trims the ends.
func NormalizeLine(line string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
}

// DetectBookLabel searches a normalized line for a GN label and returns its
// canonical "GN{digit}" form. It reports absence rather than injecting the
// default so callers can distinguish "not found" from "defaulted".
func DetectBookLabel(line string) (string, bool) {
	m := labelPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return "GN" + m[1], true
}

// ParseLine extracts zero or more records from a single raw text line. The
// line is normalized first; every non-overlapping pattern match yields one
// record, which handles lines containing concatenated records from extraction
// artifacts. The book label is detected on the same line only.
func ParseLine(line, sourceFile string, opts Options) []models.PledgeRecord {
	flat := NormalizeLine(line)
	matches := linePattern.FindAllStringSubmatch(flat, -1)
	if matches == nil {
		return nil
	}

	label, found := DetectBookLabel(flat)
	if !found {
		label = opts.DefaultBookLabel
	}

	var records []models.PledgeRecord
	for _, m := range matches {
		amount, err := models.ParseAmount(m[5])
		if err != nil {
			// The pattern guarantees a two-decimal amount; anything else is
			// not a transaction line.
			continue
		}

		paymentType, ok := models.ParsePaymentType(m[4])
		if !ok {
			continue
		}

		record := models.PledgeRecord{
			Sequence:      m[1],
			DonorName:     strings.TrimSpace(m[2]),
			PaymentAmount: amount,
			PaymentType:   paymentType,
			CheckNumber:   m[3],
			BookLabel:     label,
			Percentage:    decimal.NewFromInt(int64(opts.DefaultPercentage)),
			SourceFile:    sourceFile,
		}
		if opts.PledgeEqualsPayment {
			record.PledgeAmount = decimal.NewNullDecimal(amount)
		}

		if record.Validate() != nil {
			continue
		}
		records = append(records, record)
	}
	return records
}

// ParsePage extracts records from every line of a page of text. The second
// return value reports whether any line on the page matched; a page with no
// matches signals a parsing or extraction failure to the caller, not a
// per-line error.
func ParsePage(text, sourceFile string, opts Options) ([]models.PledgeRecord, bool) {
	var records []models.PledgeRecord
	matchedAny := false

	for _, line := range strings.Split(text, "\n") {
		lineRecords := ParseLine(line, sourceFile, opts)
		if len(lineRecords) > 0 {
			matchedAny = true
			records = append(records, lineRecords...)
		}
	}

	return records, matchedAny
}
