package calculator

import (
	"fmt"
	"sort"
	"time"

	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/domain"

	"github.com/shopspring/decimal"
)

// Replay runs one symbol's transactions through FIFO lot matching and
// produces the symbol's net quantity, remaining weighted cost and cumulative
// realized pnl. It sorts its own input by (occurredAt, sequence), so the
// result is a deterministic function of the stored ledger no matter what
// order the rows arrive in.
//
// Replay does no I/O and keeps no state between calls - it's safe to run
// concurrently for different symbols.
func Replay(transactions []model.Transaction) (*domain.ReplayResult, error) {
	txns := make([]model.Transaction, len(transactions))
	copy(txns, transactions)
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].OccurredAt.Equal(txns[j].OccurredAt) {
			return txns[i].OccurredAt.Before(txns[j].OccurredAt)
		}
		return txns[i].Sequence < txns[j].Sequence
	})

	var (
		lots               []*domain.Lot
		quantity           = decimal.Zero
		realizedPnl        = decimal.Zero
		firstAcquisitionAt *time.Time
		lastTransactionAt  *time.Time
	)

	for _, txn := range txns {
		// ingestion should have rejected malformed rows already, but the
		// ledger may have been written by an older code path - fail closed
		// instead of coercing
		if err := ValidateTransaction(txn); err != nil {
			return nil, err
		}

		switch txn.Side {
		case model.TransactionSide_Buy, model.TransactionSide_TransferIn, model.TransactionSide_Airdrop:
			unitCost := decimal.Zero
			if txn.Price != nil {
				unitCost = *txn.Price
			}
			lots = append(lots, &domain.Lot{
				QuantityRemaining: txn.Quantity,
				UnitCost:          unitCost,
				AcquiredAt:        txn.OccurredAt,
			})
			quantity = quantity.Add(txn.Quantity)
			if firstAcquisitionAt == nil {
				t := txn.OccurredAt
				firstAcquisitionAt = &t
			}

		case model.TransactionSide_Sell, model.TransactionSide_TransferOut:
			remaining := txn.Quantity
			for remaining.IsPositive() {
				if len(lots) == 0 {
					return nil, &domain.LedgerIntegrityError{
						Symbol:        txn.Symbol,
						TransactionID: txn.TransactionID,
						Kind:          domain.LedgerViolation_Oversell,
						Detail:        fmt.Sprintf("disposal of %s exceeds open lots by %s", txn.Quantity, remaining),
					}
				}
				lot := lots[0]
				consumed := decimal.Min(remaining, lot.QuantityRemaining)

				// a transfer_out without a price leaves the books at cost -
				// nothing is realized
				disposalPrice := lot.UnitCost
				if txn.Price != nil {
					disposalPrice = *txn.Price
				}
				realizedPnl = realizedPnl.Add(consumed.Mul(disposalPrice.Sub(lot.UnitCost)))

				lot.QuantityRemaining = lot.QuantityRemaining.Sub(consumed)
				if lot.QuantityRemaining.IsZero() {
					lots = lots[1:]
				}
				remaining = remaining.Sub(consumed)
				quantity = quantity.Sub(consumed)
			}
		}

		t := txn.OccurredAt
		lastTransactionAt = &t
	}

	avgCost := decimal.Zero
	if quantity.IsPositive() {
		remainingCost := decimal.Zero
		for _, lot := range lots {
			remainingCost = remainingCost.Add(lot.RemainingCost())
		}
		avgCost = remainingCost.Div(quantity)
	}

	return &domain.ReplayResult{
		Quantity:           quantity,
		AvgCost:            avgCost,
		RealizedPnl:        realizedPnl,
		LotCount:           len(lots),
		TransactionCount:   len(txns),
		FirstAcquisitionAt: firstAcquisitionAt,
		LastTransactionAt:  lastTransactionAt,
	}, nil
}

// ValidateTransaction re-checks the invariants ingestion is supposed to
// enforce. Returns a LedgerIntegrityError so callers can surface which row
// is broken.
func ValidateTransaction(txn model.Transaction) error {
	if !txn.Quantity.IsPositive() {
		return &domain.LedgerIntegrityError{
			Symbol:        txn.Symbol,
			TransactionID: txn.TransactionID,
			Kind:          domain.LedgerViolation_NonPositiveQuantity,
			Detail:        fmt.Sprintf("quantity must be > 0, got %s", txn.Quantity),
		}
	}

	switch txn.Side {
	case model.TransactionSide_Buy,
		model.TransactionSide_Sell,
		model.TransactionSide_TransferIn,
		model.TransactionSide_TransferOut,
		model.TransactionSide_Airdrop:
	default:
		return &domain.LedgerIntegrityError{
			Symbol:        txn.Symbol,
			TransactionID: txn.TransactionID,
			Kind:          domain.LedgerViolation_UnknownSide,
			Detail:        fmt.Sprintf("unrecognized side %q", txn.Side),
		}
	}

	if txn.Side == model.TransactionSide_Buy || txn.Side == model.TransactionSide_Sell {
		if txn.Price == nil {
			return &domain.LedgerIntegrityError{
				Symbol:        txn.Symbol,
				TransactionID: txn.TransactionID,
				Kind:          domain.LedgerViolation_MissingPrice,
				Detail:        fmt.Sprintf("%s requires a price", txn.Side),
			}
		}
	}
	if txn.Price != nil && txn.Price.IsNegative() {
		return &domain.LedgerIntegrityError{
			Symbol:        txn.Symbol,
			TransactionID: txn.TransactionID,
			Kind:          domain.LedgerViolation_NegativePrice,
			Detail:        fmt.Sprintf("price must be >= 0, got %s", txn.Price),
		}
	}

	if txn.OccurredAt.IsZero() {
		return &domain.LedgerIntegrityError{
			Symbol:        txn.Symbol,
			TransactionID: txn.TransactionID,
			Kind:          domain.LedgerViolation_InvalidTimestamp,
			Detail:        "occurredAt is not set",
		}
	}

	return nil
}
