package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrPriceUnavailable is the recoverable case: the oracle had no answer (or
// timed out). Positions are still returned, just without market fields.
var ErrPriceUnavailable = errors.New("price unavailable")

type LedgerViolationKind string

const (
	LedgerViolation_Oversell            LedgerViolationKind = "oversell"
	LedgerViolation_NonPositiveQuantity LedgerViolationKind = "non_positive_quantity"
	LedgerViolation_UnknownSide         LedgerViolationKind = "unknown_side"
	LedgerViolation_MissingPrice        LedgerViolationKind = "missing_price"
	LedgerViolation_NegativePrice       LedgerViolationKind = "negative_price"
	LedgerViolation_InvalidTimestamp    LedgerViolationKind = "invalid_timestamp"
)

// LedgerIntegrityError means the stored ledger does not describe a physically
// possible trading history. It is fatal for that symbol's computation and
// carries enough detail for the user to fix the offending row.
type LedgerIntegrityError struct {
	Symbol        string              `json:"symbol"`
	TransactionID uuid.UUID           `json:"transactionId"`
	Kind          LedgerViolationKind `json:"kind"`
	Detail        string              `json:"detail"`
}

func (e *LedgerIntegrityError) Error() string {
	return fmt.Sprintf("ledger integrity violation (%s) on %s, transaction %s: %s", e.Kind, e.Symbol, e.TransactionID, e.Detail)
}

// AsLedgerIntegrityError unwraps err into a LedgerIntegrityError, if it is one.
func AsLedgerIntegrityError(err error) (*LedgerIntegrityError, bool) {
	var lie *LedgerIntegrityError
	if errors.As(err, &lie) {
		return lie, true
	}
	return nil, false
}
