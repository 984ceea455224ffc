package lookup

import (
	"fjacquet/pledge-extract/internal/models"
)

// Enrich joins parsed records against the lookup table on the abbreviation
// key derived from each record's donor name. On a match the lookup entry's
// canonical name and account number are recorded in the provenance fields
// unconditionally, while the record's primary account number is filled only
// if it is currently empty — enrichment never overwrites a populated field.
// Records are updated in place; the return value is the number of records
// whose account number was filled.
func Enrich(records []models.PledgeRecord, table *Table) int {
	if table == nil {
		return 0
	}

	filled := 0
	for i := range records {
		entry, ok := table.Find(AbbrevKey(records[i].DonorName))
		if !ok {
			continue
		}

		records[i].LookupFullName = entry.FullName
		records[i].LookupAccountNumber = entry.AccountNumber

		if records[i].AccountNumber == "" && entry.AccountNumber != "" {
			records[i].AccountNumber = entry.AccountNumber
			filled++
		}
	}
	return filled
}
