package service

import (
	"testing"

	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/domain"
	"trackfolio/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newSummaryPosition(symbol string, marketValue, unrealizedPnl, unrealizedPnlPercent *decimal.Decimal) domain.ComputedPosition {
	return domain.ComputedPosition{
		Symbol:               symbol,
		AssetType:            model.AssetType_Equity,
		Quantity:             decimal.NewFromInt(1),
		AvgCost:              decimal.NewFromInt(100),
		MarketValue:          marketValue,
		UnrealizedPnl:        unrealizedPnl,
		UnrealizedPnlPercent: unrealizedPnlPercent,
	}
}

func Test_buildSummary(t *testing.T) {
	t.Run("positions without a market value are excluded, not zeroed", func(t *testing.T) {
		summary := buildSummary([]domain.ComputedPosition{
			newSummaryPosition("AAPL", util.DecimalPointer(decimal.NewFromInt(1100)), util.DecimalPointer(decimal.NewFromInt(100)), util.DecimalPointer(decimal.NewFromInt(10))),
			newSummaryPosition("MYSTERY", nil, nil, nil),
		})

		require.True(t, summary.TotalValue.Equal(decimal.NewFromInt(1100)), summary.TotalValue.String())
		require.NotNil(t, summary.TopMover)
		require.Equal(t, "AAPL", summary.TopMover.Symbol)
		require.True(t, summary.MeanUnrealizedPnlPercent.Equal(decimal.NewFromInt(10)))
	})

	t.Run("top mover is the largest absolute percent move", func(t *testing.T) {
		summary := buildSummary([]domain.ComputedPosition{
			newSummaryPosition("UP", util.DecimalPointer(decimal.NewFromInt(500)), util.DecimalPointer(decimal.NewFromInt(25)), util.DecimalPointer(decimal.NewFromInt(5))),
			newSummaryPosition("DOWN", util.DecimalPointer(decimal.NewFromInt(300)), util.DecimalPointer(decimal.NewFromInt(-60)), util.DecimalPointer(decimal.NewFromInt(-20))),
		})

		// a loss can be the top mover
		require.Equal(t, "DOWN", summary.TopMover.Symbol)
		require.True(t, summary.TopMover.UnrealizedPnl.Equal(decimal.NewFromInt(-60)))
	})

	t.Run("no priced positions means no top mover and no mean", func(t *testing.T) {
		summary := buildSummary([]domain.ComputedPosition{
			newSummaryPosition("A", nil, nil, nil),
			newSummaryPosition("B", nil, nil, nil),
		})

		require.True(t, summary.TotalValue.IsZero())
		require.Nil(t, summary.TopMover)
		require.Nil(t, summary.MeanUnrealizedPnlPercent)
	})

	t.Run("empty portfolio", func(t *testing.T) {
		summary := buildSummary(nil)
		require.True(t, summary.TotalValue.IsZero())
		require.Nil(t, summary.TopMover)
	})
}

func Test_beatsTopMover(t *testing.T) {
	mover := func(symbol string, pnl, percent int64) domain.TopMover {
		return domain.TopMover{
			Symbol:               symbol,
			UnrealizedPnl:        decimal.NewFromInt(pnl),
			UnrealizedPnlPercent: decimal.NewFromInt(percent),
		}
	}

	tests := []struct {
		name      string
		candidate domain.TopMover
		current   domain.TopMover
		want      bool
	}{
		{
			name:      "bigger percent wins",
			candidate: mover("A", 10, 12),
			current:   mover("B", 500, 8),
			want:      true,
		},
		{
			name:      "negative percent compares by magnitude",
			candidate: mover("A", -50, -15),
			current:   mover("B", 40, 10),
			want:      true,
		},
		{
			name:      "percent tie falls back to absolute pnl",
			candidate: mover("A", 200, 10),
			current:   mover("B", 100, 10),
			want:      true,
		},
		{
			name:      "full tie goes to the lexically smaller symbol",
			candidate: mover("AAA", 100, 10),
			current:   mover("BBB", 100, 10),
			want:      true,
		},
		{
			name:      "full tie, candidate sorts after current",
			candidate: mover("ZZZ", 100, 10),
			current:   mover("BBB", 100, 10),
			want:      false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, beatsTopMover(tc.candidate, tc.current))
		})
	}
}
