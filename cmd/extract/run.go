package extract

import (
	"path/filepath"
	"strings"

	"fjacquet/pledge-extract/internal/config"
	"fjacquet/pledge-extract/internal/fileutils"
	"fjacquet/pledge-extract/internal/logging"
	"fjacquet/pledge-extract/internal/lookup"
	"fjacquet/pledge-extract/internal/models"
	"fjacquet/pledge-extract/internal/pdftext"
	"fjacquet/pledge-extract/internal/pledgeparser"
	"fjacquet/pledge-extract/internal/report"
)

// RunParams carries the per-invocation inputs of the extraction pipeline.
type RunParams struct {
	InputDir   string
	OutputFile string
	LookupFile string
	Debug      bool
}

// Run executes the whole pipeline: enumerate documents, extract page text,
// parse transaction lines, enrich from the lookup table, assemble and export.
// Documents, pages and lines are processed strictly sequentially. All
// recoverable conditions are logged and absorbed; only the zero-total-records
// condition skips the export, and even that returns nil.
func Run(params RunParams, cfg *config.Config, extractor pdftext.Extractor, log logging.Logger) error {
	files, err := fileutils.ListFilesWithExtension(params.InputDir, ".pdf")
	if err != nil {
		log.WithError(err).Warn("Could not list input directory",
			logging.Field{Key: logging.FieldInputDir, Value: params.InputDir})
		return nil
	}
	if len(files) == 0 {
		log.Warn("No PDF documents found, nothing to do",
			logging.Field{Key: logging.FieldInputDir, Value: params.InputDir})
		return nil
	}

	opts := pledgeparser.Options{
		PledgeEqualsPayment: cfg.Extract.PledgeEqualsPayment,
		DefaultPercentage:   cfg.Extract.DefaultPercentage,
		DefaultBookLabel:    cfg.Extract.DefaultBookLabel,
	}

	var records []models.PledgeRecord
	for _, file := range files {
		fileRecords := extractDocument(file, extractor, opts, params.Debug, log)
		records = append(records, fileRecords...)
		log.Info("Extracted records from document",
			logging.Field{Key: logging.FieldDocument, Value: filepath.Base(file)},
			logging.Field{Key: logging.FieldRecords, Value: len(fileRecords)})
	}

	if len(records) == 0 {
		log.Error("No records extracted from any document; check the line pattern against the report text. No output written.")
		return nil
	}

	withLookup := false
	if params.LookupFile != "" {
		table, lookupErr := lookup.Load(params.LookupFile, log)
		if lookupErr != nil {
			log.WithError(lookupErr).Warn("Skipping account enrichment",
				logging.Field{Key: logging.FieldLookup, Value: params.LookupFile})
		} else {
			filled := lookup.Enrich(records, table)
			withLookup = true
			log.Info("Applied account lookup",
				logging.Field{Key: logging.FieldCount, Value: filled})
		}
	}

	logLabelDistribution(records, log)

	generator := report.NewGenerator(cfg.Output.SheetName, log)
	table := generator.BuildTable(records, withLookup)
	return generator.WriteXLSX(table, params.OutputFile)
}

// extractDocument pulls per-page text from one document and parses every
// page. Pages that yield no text or no matches are warned about and skipped.
func extractDocument(file string, extractor pdftext.Extractor, opts pledgeparser.Options, debug bool, log logging.Logger) []models.PledgeRecord {
	docName := filepath.Base(file)

	pages, err := extractor.ExtractPages(file)
	if err != nil {
		log.WithError(err).Warn("Could not extract text from document, skipping",
			logging.Field{Key: logging.FieldDocument, Value: docName})
		return nil
	}

	var records []models.PledgeRecord
	for pageNum, text := range pages {
		if strings.TrimSpace(text) == "" {
			log.Warn("Page has no extractable text, likely a scanned image",
				logging.Field{Key: logging.FieldDocument, Value: docName},
				logging.Field{Key: logging.FieldPage, Value: pageNum + 1})
			continue
		}

		pageRecords, matched := pledgeparser.ParsePage(text, docName, opts)
		if !matched {
			log.Warn("No transaction lines matched on page",
				logging.Field{Key: logging.FieldDocument, Value: docName},
				logging.Field{Key: logging.FieldPage, Value: pageNum + 1})
			if debug {
				logDiagnostics(pledgeparser.DiagnosePage(text), docName, pageNum+1, log)
			}
			continue
		}
		records = append(records, pageRecords...)
	}
	return records
}

// logDiagnostics prints the debug detail for an unmatched page: a text
// snippet and context windows around candidate sequence and amount tokens.
func logDiagnostics(diag pledgeparser.PageDiagnostics, docName string, page int, log logging.Logger) {
	pageLog := log.
		WithField(logging.FieldDocument, docName).
		WithField(logging.FieldPage, page)

	pageLog.Info("Page text snippet",
		logging.Field{Key: "snippet", Value: diag.Snippet})
	pageLog.Info("Candidate token counts",
		logging.Field{Key: "amount_tokens", Value: diag.AmountCount},
		logging.Field{Key: "sequence_tokens", Value: diag.SequenceCount})
	for _, window := range diag.AmountContexts {
		pageLog.Info("Amount context", logging.Field{Key: "context", Value: window})
	}
	for _, window := range diag.SequenceContexts {
		pageLog.Info("Sequence context", logging.Field{Key: "context", Value: window})
	}
}

// logLabelDistribution reports how records spread across book labels, the
// quickest sanity check that label detection worked on a real report.
func logLabelDistribution(records []models.PledgeRecord, log logging.Logger) {
	distribution := make(map[string]int)
	for _, record := range records {
		distribution[record.BookLabel]++
	}
	log.Info("Book label distribution",
		logging.Field{Key: "distribution", Value: distribution},
		logging.Field{Key: logging.FieldRecords, Value: len(records)})
}
