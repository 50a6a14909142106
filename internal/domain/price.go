package domain

import (
	"time"

	"trackfolio/internal/db/models/postgres/public/model"

	"github.com/shopspring/decimal"
)

// Quote is the oracle's latest known price for a symbol. AsOf and Source are
// staleness metadata - opaque to the position engine, surfaced to callers.
type Quote struct {
	Symbol    string          `json:"symbol"`
	AssetType model.AssetType `json:"assetType"`
	Price     decimal.Decimal `json:"price"`
	AsOf      time.Time       `json:"asOf"`
	Source    string          `json:"source"`
}
