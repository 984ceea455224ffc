package models

// AccountLookupEntry is one row of the external account enrichment table.
type AccountLookupEntry struct {
	// AbbrevKey is the derived first-initial + last-name join key, uppercase.
	AbbrevKey string
	// FullName is the canonical donor name from the lookup table.
	FullName string
	// AccountNumber is the account number to backfill.
	AccountNumber string
}
