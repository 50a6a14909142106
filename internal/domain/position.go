package domain

import (
	"time"

	"trackfolio/internal/db/models/postgres/public/model"

	"github.com/shopspring/decimal"
)

// Lot is one acquisition's remaining inventory. It only exists inside a
// single replay - lots are never persisted.
type Lot struct {
	QuantityRemaining decimal.Decimal
	UnitCost          decimal.Decimal
	AcquiredAt        time.Time
}

func (l Lot) RemainingCost() decimal.Decimal {
	return l.QuantityRemaining.Mul(l.UnitCost)
}

// ReplayResult is what falls out of replaying one symbol's ledger.
type ReplayResult struct {
	Quantity decimal.Decimal
	// AvgCost is the weighted cost of the lots still open after replay,
	// not a smoothed average over the whole history. Zero when the
	// position is fully closed.
	AvgCost            decimal.Decimal
	RealizedPnl        decimal.Decimal
	LotCount           int
	TransactionCount   int
	FirstAcquisitionAt *time.Time
	LastTransactionAt  *time.Time
}

func (r ReplayResult) Closed() bool {
	return !r.Quantity.IsPositive()
}

// ComputedPosition is derived on every read - it has no storage of its own.
// Market-dependent fields are pointers: nil means the price oracle had no
// answer, which is not the same thing as zero.
type ComputedPosition struct {
	Symbol               string           `json:"symbol"`
	AssetType            model.AssetType  `json:"assetType"`
	Quantity             decimal.Decimal  `json:"quantity"`
	AvgCost              decimal.Decimal  `json:"avgCost"`
	LastPrice            *decimal.Decimal `json:"lastPrice,omitempty"`
	MarketValue          *decimal.Decimal `json:"marketValue,omitempty"`
	UnrealizedPnl        *decimal.Decimal `json:"unrealizedPnl,omitempty"`
	UnrealizedPnlPercent *decimal.Decimal `json:"unrealizedPnlPercent,omitempty"`
	RealizedPnl          decimal.Decimal  `json:"realizedPnl"`
	TransactionCount     int              `json:"transactionCount"`
	FirstAcquisitionAt   time.Time        `json:"firstAcquisitionAt"`
	LastTransactionAt    time.Time        `json:"lastTransactionAt"`
}

// ClosedPosition keeps realized pnl visible for symbols whose live quantity
// has gone to zero, instead of dropping them from every view.
type ClosedPosition struct {
	Symbol            string          `json:"symbol"`
	AssetType         model.AssetType `json:"assetType"`
	RealizedPnl       decimal.Decimal `json:"realizedPnl"`
	TransactionCount  int             `json:"transactionCount"`
	LastTransactionAt time.Time       `json:"lastTransactionAt"`
}

type TopMover struct {
	Symbol               string          `json:"symbol"`
	UnrealizedPnl        decimal.Decimal `json:"unrealizedPnl"`
	UnrealizedPnlPercent decimal.Decimal `json:"unrealizedPnlPercent"`
}

// PortfolioSummary folds every computed position into portfolio totals.
// TotalValue only counts positions with a known market value. Errors holds
// per-symbol integrity failures that did not stop the other symbols.
type PortfolioSummary struct {
	TotalValue               decimal.Decimal         `json:"totalValue"`
	TopMover                 *TopMover               `json:"topMover,omitempty"`
	MeanUnrealizedPnlPercent *decimal.Decimal        `json:"meanUnrealizedPnlPercent,omitempty"`
	Errors                   []*LedgerIntegrityError `json:"errors,omitempty"`
}
