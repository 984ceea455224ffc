package lookup

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Recognized column headers. Header cells are trimmed before matching, but
// the names themselves are exact — they mirror the upstream report schema.
const (
	colFullName  = "fullName"
	colFirstName = "firstName"
	colLastName  = "lastName"
	colAccount   = "ACCOUNTNUMBER"
)

// csvRow maps the union of both schema variants; absent columns unmarshal to
// empty strings.
type csvRow struct {
	FullName      string `csv:"fullName"`
	FirstName     string `csv:"firstName"`
	LastName      string `csv:"lastName"`
	AccountNumber string `csv:"ACCOUNTNUMBER"`
}

// readCSV reads a CSV lookup table using gocsv for the row mapping and the
// header record for schema detection.
func readCSV(path string) ([]rawRow, columnSet, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool reads user-provided file paths
	if err != nil {
		return nil, columnSet{}, fmt.Errorf("error reading lookup CSV: %w", err)
	}

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, columnSet{}, fmt.Errorf("error reading lookup CSV header: %w", err)
	}
	columns := classifyColumns(header)

	var csvRows []csvRow
	if err := gocsv.UnmarshalBytes(data, &csvRows); err != nil {
		return nil, columnSet{}, fmt.Errorf("error parsing lookup CSV: %w", err)
	}

	rows := make([]rawRow, 0, len(csvRows))
	for _, r := range csvRows {
		rows = append(rows, rawRow(r))
	}
	return rows, columns, nil
}

// readXLSX reads the first sheet of an Excel workbook, treating the first row
// as headers.
func readXLSX(path string) ([]rawRow, columnSet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, columnSet{}, fmt.Errorf("error opening lookup workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, columnSet{}, fmt.Errorf("lookup workbook has no sheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, columnSet{}, fmt.Errorf("error reading lookup sheet: %w", err)
	}
	if len(cells) == 0 {
		return nil, columnSet{}, fmt.Errorf("lookup sheet is empty")
	}

	header := cells[0]
	columns := classifyColumns(header)

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var rows []rawRow
	for _, row := range cells[1:] {
		rows = append(rows, rawRow{
			FullName:      cell(row, colFullName),
			FirstName:     cell(row, colFirstName),
			LastName:      cell(row, colLastName),
			AccountNumber: cell(row, colAccount),
		})
	}
	return rows, columns, nil
}

// yamlRow is one entry of a YAML lookup file: a list of mappings using the
// same field names as the tabular formats.
type yamlRow struct {
	FullName      string `yaml:"fullName"`
	FirstName     string `yaml:"firstName"`
	LastName      string `yaml:"lastName"`
	AccountNumber string `yaml:"ACCOUNTNUMBER"`
}

// readYAML reads a YAML lookup table. YAML has no header row, so column
// presence is taken from which fields are populated anywhere in the file.
func readYAML(path string) ([]rawRow, columnSet, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool reads user-provided file paths
	if err != nil {
		return nil, columnSet{}, fmt.Errorf("error reading lookup YAML: %w", err)
	}

	var yamlRows []yamlRow
	if err := yaml.Unmarshal(data, &yamlRows); err != nil {
		return nil, columnSet{}, fmt.Errorf("error parsing lookup YAML: %w", err)
	}

	var columns columnSet
	rows := make([]rawRow, 0, len(yamlRows))
	for _, r := range yamlRows {
		if strings.TrimSpace(r.FullName) != "" {
			columns.HasFullName = true
		}
		if strings.TrimSpace(r.FirstName) != "" && strings.TrimSpace(r.LastName) != "" {
			columns.HasFirstLast = true
		}
		if strings.TrimSpace(r.AccountNumber) != "" {
			columns.HasAccount = true
		}
		rows = append(rows, rawRow(r))
	}
	columns.Names = []string{colFullName, colFirstName, colLastName, colAccount}
	return rows, columns, nil
}

// classifyColumns records which recognized columns appear in a header row.
func classifyColumns(header []string) columnSet {
	columns := columnSet{}
	hasFirst, hasLast := false, false
	for _, name := range header {
		name = strings.TrimSpace(name)
		columns.Names = append(columns.Names, name)
		switch name {
		case colFullName:
			columns.HasFullName = true
		case colFirstName:
			hasFirst = true
		case colLastName:
			hasLast = true
		case colAccount:
			columns.HasAccount = true
		}
	}
	columns.HasFirstLast = hasFirst && hasLast
	return columns
}
