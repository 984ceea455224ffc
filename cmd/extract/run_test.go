package extract

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/pledge-extract/internal/config"
	"fjacquet/pledge-extract/internal/fileutils"
	"fjacquet/pledge-extract/internal/logging"
	"fjacquet/pledge-extract/internal/pdftext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Extract.PledgeEqualsPayment = true
	cfg.Extract.DefaultPercentage = 100
	cfg.Extract.DefaultBookLabel = "GN1"
	cfg.Output.SheetName = "Extracted"
	return cfg
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.5"), 0600))
}

func TestRunEndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	outputFile := filepath.Join(t.TempDir(), "pledges.xlsx")

	aPDF := filepath.Join(inputDir, "a.pdf")
	bPDF := filepath.Join(inputDir, "b.pdf")
	touch(t, aPDF)
	touch(t, bPDF)

	lookupFile := filepath.Join(t.TempDir(), "lookup.csv")
	require.NoError(t, os.WriteFile(lookupFile, []byte(
		"fullName,ACCOUNTNUMBER\nJAMES ROBERT BOYD,1001\n"), 0600))

	extractor := &pdftext.MockExtractor{
		Pages: map[string][]string{
			aPDF: {
				"Pledge report header\n" +
					"5250031143286 JAMES ROBERT BOYD 2727 Check 100.00 4600055 GN-4\n" +
					"5250031143287 ANNA LEE 311 Cash 25.50 4600056",
			},
			bPDF: {
				"5250031143288 FREDERICK B HUSSEY 42 ACH 500.00 4600057",
			},
		},
	}

	log := &logging.MockLogger{}
	require.NoError(t, Run(RunParams{
		InputDir:   inputDir,
		OutputFile: outputFile,
		LookupFile: lookupFile,
	}, testConfig(), extractor, log))

	f, err := excelize.OpenFile(outputFile)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows("Extracted")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus three records")

	assert.Len(t, rows[0], 12, "provenance columns present when enrichment ran")

	// Document sort order, then line-encounter order.
	name, err := f.GetCellValue("Extracted", "B2")
	require.NoError(t, err)
	assert.Equal(t, "JAMES ROBERT BOYD", name)

	account, err := f.GetCellValue("Extracted", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1001", account, "account number backfilled from lookup")

	label, err := f.GetCellValue("Extracted", "G2")
	require.NoError(t, err)
	assert.Equal(t, "GN4", label)

	label, err = f.GetCellValue("Extracted", "G3")
	require.NoError(t, err)
	assert.Equal(t, "GN1", label, "label scope is the line, not the page")

	source, err := f.GetCellValue("Extracted", "I4")
	require.NoError(t, err)
	assert.Equal(t, "b.pdf", source)
}

func TestRunNoDocuments(t *testing.T) {
	inputDir := t.TempDir()
	outputFile := filepath.Join(t.TempDir(), "pledges.xlsx")

	log := &logging.MockLogger{}
	require.NoError(t, Run(RunParams{
		InputDir:   inputDir,
		OutputFile: outputFile,
	}, testConfig(), pdftext.NewMockExtractor(nil, nil), log))

	assert.False(t, fileutils.FileExists(outputFile), "no output written without documents")
	assert.True(t, log.HasMessage("No PDF documents found, nothing to do"))
}

func TestRunNoRecordsSkipsExport(t *testing.T) {
	inputDir := t.TempDir()
	outputFile := filepath.Join(t.TempDir(), "pledges.xlsx")
	touch(t, filepath.Join(inputDir, "scan.pdf"))

	extractor := pdftext.NewMockExtractor([]string{"Totals only, no transaction lines"}, nil)

	log := &logging.MockLogger{}
	require.NoError(t, Run(RunParams{
		InputDir:   inputDir,
		OutputFile: outputFile,
	}, testConfig(), extractor, log))

	assert.False(t, fileutils.FileExists(outputFile), "zero records must skip the export")
}

func TestRunMalformedLookupSkipsEnrichment(t *testing.T) {
	inputDir := t.TempDir()
	outputFile := filepath.Join(t.TempDir(), "pledges.xlsx")
	touch(t, filepath.Join(inputDir, "a.pdf"))

	lookupFile := filepath.Join(t.TempDir(), "lookup.csv")
	require.NoError(t, os.WriteFile(lookupFile, []byte("donor,account\nX,1\n"), 0600))

	extractor := pdftext.NewMockExtractor([]string{
		"5250031143286 JAMES ROBERT BOYD 2727 Check 100.00 4600055",
	}, nil)

	require.NoError(t, Run(RunParams{
		InputDir:   inputDir,
		OutputFile: outputFile,
		LookupFile: lookupFile,
	}, testConfig(), extractor, &logging.MockLogger{}))

	f, err := excelize.OpenFile(outputFile)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows("Extracted")
	require.NoError(t, err)
	require.Len(t, rows, 2, "extraction output unaffected by a malformed lookup table")
	assert.Len(t, rows[0], 10, "no provenance columns when enrichment was skipped")

	account, err := f.GetCellValue("Extracted", "A2")
	require.NoError(t, err)
	assert.Equal(t, "", account)
}

func TestRunEmptyPageIsWarnedAndSkipped(t *testing.T) {
	inputDir := t.TempDir()
	outputFile := filepath.Join(t.TempDir(), "pledges.xlsx")
	touch(t, filepath.Join(inputDir, "a.pdf"))

	extractor := pdftext.NewMockExtractor([]string{
		"", // scanned page, no text layer
		"5250031143286 JAMES ROBERT BOYD 2727 Check 100.00 4600055",
	}, nil)

	log := &logging.MockLogger{}
	require.NoError(t, Run(RunParams{
		InputDir:   inputDir,
		OutputFile: outputFile,
	}, testConfig(), extractor, log))

	assert.True(t, log.HasMessage("Page has no extractable text, likely a scanned image"))
	assert.True(t, fileutils.FileExists(outputFile))
}
