package lookup

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/pledge-extract/internal/logging"
	"fjacquet/pledge-extract/internal/models"
	"fjacquet/pledge-extract/internal/parsererror"
)

// schemaVariant identifies which of the two supported lookup table layouts a
// file uses. The variant is decided once at load time.
type schemaVariant int

const (
	schemaUnknown schemaVariant = iota
	// schemaPreJoined: a fullName column plus an account number column.
	schemaPreJoined
	// schemaSplit: firstName and lastName columns plus an account number
	// column; the join key is derived in-process.
	schemaSplit
)

// rawRow is the format-independent shape of one lookup table row. Which
// fields are meaningful depends on the detected schema variant.
type rawRow struct {
	FullName      string
	FirstName     string
	LastName      string
	AccountNumber string
}

// columnSet records which recognized columns a file declares.
type columnSet struct {
	HasFullName  bool
	HasFirstLast bool
	HasAccount   bool
	Names        []string
}

// Table is the loaded lookup table, deduplicated on the abbreviation key.
type Table struct {
	entries map[string]models.AccountLookupEntry
}

// Find returns the entry for the given abbreviation key.
func (t *Table) Find(key string) (models.AccountLookupEntry, bool) {
	entry, ok := t.entries[key]
	return entry, ok
}

// Len returns the number of distinct abbreviation keys in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Load reads a lookup table file, picking the reader by file extension
// (.csv, .xlsx, .yaml/.yml) and the schema variant from the columns present.
// Any failure here is meant to be non-fatal to the run: callers warn and skip
// enrichment.
func Load(path string, log logging.Logger) (*Table, error) {
	var (
		rows    []rawRow
		columns columnSet
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, columns, err = readCSV(path)
	case ".xlsx":
		rows, columns, err = readXLSX(path)
	case ".yaml", ".yml":
		rows, columns, err = readYAML(path)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: ".csv, .xlsx or .yaml",
			Msg:            fmt.Sprintf("unsupported lookup table extension %q", filepath.Ext(path)),
		}
	}
	if err != nil {
		return nil, err
	}

	variant := detectSchema(columns)
	if variant == schemaUnknown {
		return nil, &parsererror.LookupSchemaError{FilePath: path, Columns: columns.Names}
	}

	table := buildTable(rows, variant)
	log.Info("Loaded account lookup table",
		logging.Field{Key: logging.FieldLookup, Value: path},
		logging.Field{Key: logging.FieldCount, Value: table.Len()})
	return table, nil
}

// detectSchema picks the variant from the declared columns. A file carrying
// both a fullName column and a first/last pair is treated as pre-joined.
func detectSchema(columns columnSet) schemaVariant {
	if !columns.HasAccount {
		return schemaUnknown
	}
	if columns.HasFullName {
		return schemaPreJoined
	}
	if columns.HasFirstLast {
		return schemaSplit
	}
	return schemaUnknown
}

// buildTable derives abbreviation keys and deduplicates on them. The first
// occurrence of a key wins; later homonyms are dropped.
func buildTable(rows []rawRow, variant schemaVariant) *Table {
	entries := make(map[string]models.AccountLookupEntry, len(rows))

	for _, row := range rows {
		var fullName string
		switch variant {
		case schemaPreJoined:
			fullName = strings.TrimSpace(row.FullName)
		case schemaSplit:
			fullName = strings.TrimSpace(strings.TrimSpace(row.FirstName) + " " + strings.TrimSpace(row.LastName))
		}
		if fullName == "" {
			continue
		}

		key := AbbrevKey(fullName)
		if _, exists := entries[key]; exists {
			continue
		}
		entries[key] = models.AccountLookupEntry{
			AbbrevKey:     key,
			FullName:      strings.ToUpper(fullName),
			AccountNumber: strings.TrimSpace(row.AccountNumber),
		}
	}

	return &Table{entries: entries}
}
