package service

import (
	"strings"
	"testing"

	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_ParseTransactionsCSV(t *testing.T) {
	portfolioID := uuid.New()

	t.Run("parses a well formed file", func(t *testing.T) {
		csv := strings.Join([]string{
			"symbol,assetType,side,quantity,price,occurredAt",
			"AAPL,equity,buy,10,100.50,2024-01-02T15:00:00Z",
			"BTC-USD,crypto,airdrop,0.25,,2024-01-03T09:30:00Z",
			"AAPL,equity,sell,4,110,2024-02-01T15:00:00Z",
		}, "\n")

		transactions, err := ParseTransactionsCSV(portfolioID, strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, transactions, 3)

		first := transactions[0]
		require.Equal(t, portfolioID, first.PortfolioID)
		require.Equal(t, "AAPL", first.Symbol)
		require.Equal(t, model.AssetType_Equity, first.AssetType)
		require.Equal(t, model.TransactionSide_Buy, first.Side)
		require.True(t, first.Quantity.Equal(decimal.NewFromInt(10)))
		require.True(t, first.Price.Equal(decimal.RequireFromString("100.50")))
		require.Equal(t, 2024, first.OccurredAt.Year())

		// airdrops come in with no price
		require.Nil(t, transactions[1].Price)

		symbols := []string{}
		for _, transaction := range transactions {
			symbols = append(symbols, transaction.Symbol)
		}
		require.Empty(t, cmp.Diff([]string{"AAPL", "BTC-USD", "AAPL"}, symbols))
	})

	t.Run("one bad row rejects the file", func(t *testing.T) {
		csv := strings.Join([]string{
			"symbol,assetType,side,quantity,price,occurredAt",
			"AAPL,equity,buy,10,100,2024-01-02T15:00:00Z",
			"AAPL,equity,buy,-3,100,2024-01-03T15:00:00Z",
		}, "\n")

		transactions, err := ParseTransactionsCSV(portfolioID, strings.NewReader(csv))
		require.Nil(t, transactions)
		require.ErrorContains(t, err, "row 2")

		lie, ok := domain.AsLedgerIntegrityError(err)
		require.True(t, ok, "expected LedgerIntegrityError, got %v", err)
		require.Equal(t, domain.LedgerViolation_NonPositiveQuantity, lie.Kind)
	})

	t.Run("buy without a price is rejected at parse time", func(t *testing.T) {
		csv := strings.Join([]string{
			"symbol,assetType,side,quantity,price,occurredAt",
			"AAPL,equity,buy,10,,2024-01-02T15:00:00Z",
		}, "\n")

		_, err := ParseTransactionsCSV(portfolioID, strings.NewReader(csv))
		lie, ok := domain.AsLedgerIntegrityError(err)
		require.True(t, ok, "expected LedgerIntegrityError, got %v", err)
		require.Equal(t, domain.LedgerViolation_MissingPrice, lie.Kind)
	})

	t.Run("unknown asset type", func(t *testing.T) {
		csv := strings.Join([]string{
			"symbol,assetType,side,quantity,price,occurredAt",
			"AAPL,stonk,buy,10,100,2024-01-02T15:00:00Z",
		}, "\n")

		_, err := ParseTransactionsCSV(portfolioID, strings.NewReader(csv))
		require.ErrorContains(t, err, "unrecognized asset type")
	})

	t.Run("bad timestamp", func(t *testing.T) {
		csv := strings.Join([]string{
			"symbol,assetType,side,quantity,price,occurredAt",
			"AAPL,equity,buy,10,100,01/02/2024",
		}, "\n")

		_, err := ParseTransactionsCSV(portfolioID, strings.NewReader(csv))
		require.ErrorContains(t, err, "invalid occurredAt")
	})

	t.Run("empty file", func(t *testing.T) {
		csv := "symbol,assetType,side,quantity,price,occurredAt\n"
		_, err := ParseTransactionsCSV(portfolioID, strings.NewReader(csv))
		require.ErrorContains(t, err, "no transactions")
	})
}
