// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"

	"fjacquet/pledge-extract/internal/parsererror"

	"github.com/shopspring/decimal"
)

// PaymentType is the payment method recovered from a transaction line.
type PaymentType string

// Payment types recognized by the transaction line pattern.
const (
	PaymentTypeCheck PaymentType = "Check"
	PaymentTypeCash  PaymentType = "Cash"
	PaymentTypeCard  PaymentType = "Card"
	PaymentTypeACH   PaymentType = "ACH"
)

// ParsePaymentType returns the PaymentType for s, matching case-insensitively.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "check":
		return PaymentTypeCheck, true
	case "cash":
		return PaymentTypeCash, true
	case "card":
		return PaymentTypeCard, true
	case "ach":
		return PaymentTypeACH, true
	}
	return "", false
}

// Valid reports whether p is one of the recognized payment types.
func (p PaymentType) Valid() bool {
	switch p {
	case PaymentTypeCheck, PaymentTypeCash, PaymentTypeCard, PaymentTypeACH:
		return true
	}
	return false
}

// PledgeRecord is one parsed donation transaction line. Records are created
// during line parsing, enriched at most once by the account lookup (which
// only fills empty fields), and consumed once during export.
type PledgeRecord struct {
	Sequence      string              // 13-digit identifier, not unique across documents
	DonorName     string              // donor name as printed, uppercase convention
	PledgeAmount  decimal.NullDecimal // equals PaymentAmount under the default policy
	PaymentAmount decimal.Decimal
	PaymentType   PaymentType
	CheckNumber   string // 1-10 digits
	BookLabel     string // GN1..GN7
	Percentage    decimal.Decimal

	AccountNumber string // filled by lookup enrichment when initially empty

	// Provenance of the matched lookup entry, kept even when AccountNumber
	// was already populated.
	LookupFullName      string
	LookupAccountNumber string

	SourceFile string
}

// Validate checks the record invariants: non-empty donor name, a recognized
// payment type and a parseable payment amount.
func (r PledgeRecord) Validate() error {
	if strings.TrimSpace(r.DonorName) == "" {
		return fmt.Errorf("record %s: donor name is empty", r.Sequence)
	}
	if !r.PaymentType.Valid() {
		return fmt.Errorf("record %s: invalid payment type %q", r.Sequence, string(r.PaymentType))
	}
	return nil
}

// ParseAmount parses a currency string with two decimal places into a decimal.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, "$", "")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{
			Stage: "amount",
			Field: "amount",
			Value: amountStr,
			Err:   err,
		}
	}
	return dec, nil
}
