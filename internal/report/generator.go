// Package report assembles parsed records into a flat table and exports it as
// a single-sheet spreadsheet.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/pledge-extract/internal/fileutils"
	"fjacquet/pledge-extract/internal/logging"
	"fjacquet/pledge-extract/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Output column headers, in the documented export order. The names mirror the
// downstream import schema and must not be reordered.
var baseColumns = []string{
	"Individuals.ACCOUNTNUMBER",
	"Individuals.fullName",
	"Individuals.Transactions.TOTALPLEDGEAMOUNT",
	"Individuals.Transactions.TOTALPAYMENTAMOUNT",
	"Individuals.Transactions.PAYMENTTYPE",
	"Individuals.Transactions.CHECKNUMBER",
	"Individuals.Transactions.DCDetails.BOOKLABEL",
	"Individuals.Transactions.DCDetails.DESPERCENTAGE",
	"Source File",
	"Seq",
}

// Provenance columns appended when lookup enrichment was applied.
var lookupColumns = []string{
	"Lookup.fullName",
	"Lookup.ACCOUNTNUMBER",
}

// numericColumns are coerced to numeric cells on export; unparseable values
// become empty cells instead of failing the run.
var numericColumns = map[string]bool{
	"Individuals.Transactions.TOTALPLEDGEAMOUNT":       true,
	"Individuals.Transactions.TOTALPAYMENTAMOUNT":      true,
	"Individuals.Transactions.DCDetails.DESPERCENTAGE": true,
}

// Table is the assembled output: a fixed column schema and one string row per
// surviving record.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Generator builds and exports the output table.
type Generator struct {
	sheetName string
	log       logging.Logger
}

// NewGenerator creates a Generator writing to the given sheet name.
func NewGenerator(sheetName string, log logging.Logger) *Generator {
	return &Generator{
		sheetName: sheetName,
		log:       log,
	}
}

// BuildTable assembles records (already in document-sort then line-encounter
// order) into the fixed column schema and removes exact-duplicate rows — rows
// equal across every output column. Rows matching on some key but differing
// in any detail are both kept. withLookup appends the provenance columns.
func (g *Generator) BuildTable(records []models.PledgeRecord, withLookup bool) *Table {
	columns := baseColumns
	if withLookup {
		columns = append(append([]string{}, baseColumns...), lookupColumns...)
	}

	table := &Table{Columns: columns}
	seen := make(map[string]bool, len(records))

	for _, record := range records {
		row := recordRow(record, withLookup)

		key := strings.Join(row, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		table.Rows = append(table.Rows, row)
	}

	if dropped := len(records) - len(table.Rows); dropped > 0 {
		g.log.Info("Removed duplicate rows",
			logging.Field{Key: logging.FieldCount, Value: dropped})
	}

	return table
}

// recordRow renders one record as string cells in column order.
func recordRow(record models.PledgeRecord, withLookup bool) []string {
	pledge := ""
	if record.PledgeAmount.Valid {
		pledge = record.PledgeAmount.Decimal.StringFixed(2)
	}

	row := []string{
		record.AccountNumber,
		record.DonorName,
		pledge,
		record.PaymentAmount.StringFixed(2),
		string(record.PaymentType),
		record.CheckNumber,
		record.BookLabel,
		record.Percentage.String(),
		record.SourceFile,
		record.Sequence,
	}
	if withLookup {
		row = append(row, record.LookupFullName, record.LookupAccountNumber)
	}
	return row
}

// WriteXLSX exports the table as a single-sheet workbook at path. Numeric
// columns are written as numbers; cells that fail to parse are left empty.
func (g *Generator) WriteXLSX(table *Table, path string) error {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			g.log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), g.sheetName); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	for col, name := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("error addressing header cell: %w", err)
		}
		if err := f.SetCellValue(g.sheetName, cell, name); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}

	for rowIdx, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("error addressing cell: %w", err)
			}

			if numericColumns[table.Columns[col]] {
				num, ok := coerceNumeric(value)
				if !ok {
					continue // unparseable numeric value stays missing
				}
				if err := f.SetCellValue(g.sheetName, cell, num); err != nil {
					return fmt.Errorf("error writing cell: %w", err)
				}
				continue
			}

			if err := f.SetCellValue(g.sheetName, cell, value); err != nil {
				return fmt.Errorf("error writing cell: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}

	g.log.Info("Saved output workbook",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldSheet, Value: g.sheetName},
		logging.Field{Key: logging.FieldCount, Value: len(table.Rows)})
	return nil
}

// coerceNumeric parses a cell value as a decimal number. Empty or unparseable
// values report false; the cell is treated as missing.
func coerceNumeric(value string) (float64, bool) {
	if strings.TrimSpace(value) == "" {
		return 0, false
	}
	dec, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	f, _ := dec.Float64()
	return f, true
}
