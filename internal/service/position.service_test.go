package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/domain"
	"trackfolio/internal/repository"
	mock_repository "trackfolio/internal/repository/mocks"
	"trackfolio/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newServiceTxn(portfolioID uuid.UUID, symbol string, assetType model.AssetType, side model.TransactionSide, quantity, price string, occurredAt time.Time, sequence int64) model.Transaction {
	var p *decimal.Decimal
	if price != "" {
		d := decimal.RequireFromString(price)
		p = &d
	}
	return model.Transaction{
		TransactionID: uuid.New(),
		PortfolioID:   portfolioID,
		Symbol:        symbol,
		AssetType:     assetType,
		Side:          side,
		Quantity:      decimal.RequireFromString(quantity),
		Price:         p,
		OccurredAt:    occurredAt,
		Sequence:      sequence,
	}
}

func newTestPositionService(
	transactionRepository repository.TransactionRepository,
	quoteRepository repository.QuoteRepository,
) positionServiceHandler {
	return positionServiceHandler{
		TransactionRepository: transactionRepository,
		QuoteRepository:       quoteRepository,
		QuoteTimeout:          time.Second,
	}
}

func Test_ComputePositions(t *testing.T) {
	portfolioID := uuid.New()
	day1 := util.NewDate(2024, 1, 2)
	day2 := util.NewDate(2024, 1, 3)

	t.Run("projects market fields from the latest quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		txnRepo := mock_repository.NewMockTransactionRepository(ctrl)
		quoteRepo := mock_repository.NewMockQuoteRepository(ctrl)
		handler := newTestPositionService(txnRepo, quoteRepo)

		txnRepo.EXPECT().List(gomock.Any()).Return([]model.Transaction{
			newServiceTxn(portfolioID, "AAPL", model.AssetType_Equity, model.TransactionSide_Buy, "10", "100", day1, 1),
		}, nil)
		quoteRepo.EXPECT().GetLatestQuote(gomock.Any(), "AAPL", model.AssetType_Equity).Return(&domain.Quote{
			Symbol:    "AAPL",
			AssetType: model.AssetType_Equity,
			Price:     decimal.NewFromInt(110),
			AsOf:      day2,
			Source:    "yahoo",
		}, nil)

		positions, integrityErrors, err := handler.ComputePositions(context.Background(), portfolioID)
		require.NoError(t, err)
		require.Empty(t, integrityErrors)
		require.Len(t, positions, 1)

		position := positions[0]
		require.Equal(t, "AAPL", position.Symbol)
		require.True(t, position.Quantity.Equal(decimal.NewFromInt(10)))
		require.True(t, position.LastPrice.Equal(decimal.NewFromInt(110)))
		require.True(t, position.MarketValue.Equal(decimal.NewFromInt(1100)))
		require.True(t, position.UnrealizedPnl.Equal(decimal.NewFromInt(100)))
		require.True(t, position.UnrealizedPnlPercent.Equal(decimal.NewFromInt(10)))
	})

	t.Run("unavailable price leaves market fields nil", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		txnRepo := mock_repository.NewMockTransactionRepository(ctrl)
		quoteRepo := mock_repository.NewMockQuoteRepository(ctrl)
		handler := newTestPositionService(txnRepo, quoteRepo)

		txnRepo.EXPECT().List(gomock.Any()).Return([]model.Transaction{
			newServiceTxn(portfolioID, "BTC-USD", model.AssetType_Crypto, model.TransactionSide_Buy, "2", "40000", day1, 1),
		}, nil)
		quoteRepo.EXPECT().GetLatestQuote(gomock.Any(), "BTC-USD", model.AssetType_Crypto).
			Return(nil, fmt.Errorf("%w: coingecko is down", domain.ErrPriceUnavailable))

		positions, integrityErrors, err := handler.ComputePositions(context.Background(), portfolioID)
		require.NoError(t, err)
		require.Empty(t, integrityErrors)
		require.Len(t, positions, 1)

		position := positions[0]
		require.True(t, position.Quantity.Equal(decimal.NewFromInt(2)))
		require.True(t, position.AvgCost.Equal(decimal.NewFromInt(40000)))
		require.Nil(t, position.LastPrice)
		require.Nil(t, position.MarketValue)
		require.Nil(t, position.UnrealizedPnl)
		require.Nil(t, position.UnrealizedPnlPercent)
	})

	t.Run("a broken symbol does not take the others down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		txnRepo := mock_repository.NewMockTransactionRepository(ctrl)
		quoteRepo := mock_repository.NewMockQuoteRepository(ctrl)
		handler := newTestPositionService(txnRepo, quoteRepo)

		txnRepo.EXPECT().List(gomock.Any()).Return([]model.Transaction{
			// oversell: nothing was ever bought
			newServiceTxn(portfolioID, "BAD", model.AssetType_Equity, model.TransactionSide_Sell, "5", "10", day1, 1),
			newServiceTxn(portfolioID, "MSFT", model.AssetType_Equity, model.TransactionSide_Buy, "3", "400", day1, 2),
		}, nil)
		quoteRepo.EXPECT().GetLatestQuote(gomock.Any(), "MSFT", model.AssetType_Equity).Return(&domain.Quote{
			Symbol:    "MSFT",
			AssetType: model.AssetType_Equity,
			Price:     decimal.NewFromInt(410),
			AsOf:      day2,
			Source:    "yahoo",
		}, nil)

		positions, integrityErrors, err := handler.ComputePositions(context.Background(), portfolioID)
		require.NoError(t, err)

		require.Len(t, positions, 1)
		require.Equal(t, "MSFT", positions[0].Symbol)

		require.Len(t, integrityErrors, 1)
		require.Equal(t, "BAD", integrityErrors[0].Symbol)
		require.Equal(t, domain.LedgerViolation_Oversell, integrityErrors[0].Kind)
	})

	t.Run("fully closed symbols are excluded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		txnRepo := mock_repository.NewMockTransactionRepository(ctrl)
		quoteRepo := mock_repository.NewMockQuoteRepository(ctrl)
		handler := newTestPositionService(txnRepo, quoteRepo)

		txnRepo.EXPECT().List(gomock.Any()).Return([]model.Transaction{
			newServiceTxn(portfolioID, "TSLA", model.AssetType_Equity, model.TransactionSide_Buy, "4", "200", day1, 1),
			newServiceTxn(portfolioID, "TSLA", model.AssetType_Equity, model.TransactionSide_Sell, "4", "250", day2, 2),
		}, nil)
		// no quote lookup for a closed position

		positions, integrityErrors, err := handler.ComputePositions(context.Background(), portfolioID)
		require.NoError(t, err)
		require.Empty(t, integrityErrors)
		require.Empty(t, positions)
	})
}

func Test_ComputePosition(t *testing.T) {
	portfolioID := uuid.New()
	day1 := util.NewDate(2024, 1, 2)

	t.Run("unknown symbol returns nil", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		txnRepo := mock_repository.NewMockTransactionRepository(ctrl)
		quoteRepo := mock_repository.NewMockQuoteRepository(ctrl)
		handler := newTestPositionService(txnRepo, quoteRepo)

		txnRepo.EXPECT().List(gomock.Any()).Return([]model.Transaction{}, nil)

		position, err := handler.ComputePosition(context.Background(), portfolioID, "NOPE")
		require.NoError(t, err)
		require.Nil(t, position)
	})

	t.Run("integrity violation surfaces as an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		txnRepo := mock_repository.NewMockTransactionRepository(ctrl)
		quoteRepo := mock_repository.NewMockQuoteRepository(ctrl)
		handler := newTestPositionService(txnRepo, quoteRepo)

		txnRepo.EXPECT().List(gomock.Any()).Return([]model.Transaction{
			newServiceTxn(portfolioID, "BAD", model.AssetType_Equity, model.TransactionSide_Sell, "5", "10", day1, 1),
		}, nil)

		position, err := handler.ComputePosition(context.Background(), portfolioID, "BAD")
		require.Nil(t, position)

		lie, ok := domain.AsLedgerIntegrityError(err)
		require.True(t, ok, "expected LedgerIntegrityError, got %v", err)
		require.Equal(t, domain.LedgerViolation_Oversell, lie.Kind)
	})
}

func Test_ListClosedPositions(t *testing.T) {
	portfolioID := uuid.New()
	day1 := util.NewDate(2024, 1, 2)
	day2 := util.NewDate(2024, 1, 3)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	txnRepo := mock_repository.NewMockTransactionRepository(ctrl)
	quoteRepo := mock_repository.NewMockQuoteRepository(ctrl)
	handler := newTestPositionService(txnRepo, quoteRepo)

	txnRepo.EXPECT().List(gomock.Any()).Return([]model.Transaction{
		// closed with profit
		newServiceTxn(portfolioID, "TSLA", model.AssetType_Equity, model.TransactionSide_Buy, "4", "200", day1, 1),
		newServiceTxn(portfolioID, "TSLA", model.AssetType_Equity, model.TransactionSide_Sell, "4", "250", day2, 2),
		// still open
		newServiceTxn(portfolioID, "AAPL", model.AssetType_Equity, model.TransactionSide_Buy, "10", "100", day1, 3),
		// broken
		newServiceTxn(portfolioID, "BAD", model.AssetType_Equity, model.TransactionSide_Sell, "5", "10", day1, 4),
	}, nil)

	closed, err := handler.ListClosedPositions(context.Background(), portfolioID)
	require.NoError(t, err)
	require.Len(t, closed, 1)

	require.Equal(t, "TSLA", closed[0].Symbol)
	require.True(t, closed[0].RealizedPnl.Equal(decimal.NewFromInt(200)), closed[0].RealizedPnl.String())
	require.Equal(t, 2, closed[0].TransactionCount)
	require.Equal(t, day2, closed[0].LastTransactionAt)
}
