package service

import (
	"context"
	"sort"
	"time"

	"trackfolio/internal/calculator"
	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/domain"
	"trackfolio/internal/logger"
	"trackfolio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PositionService interface {
	// ComputePositions returns the live positions for every symbol in the
	// portfolio. A symbol whose ledger is broken doesn't take the others
	// down - it lands in the returned error list instead.
	ComputePositions(ctx context.Context, portfolioID uuid.UUID) ([]domain.ComputedPosition, []*domain.LedgerIntegrityError, error)
	// ComputePosition returns one symbol's live position, or nil if the
	// symbol has never traded or is fully closed.
	ComputePosition(ctx context.Context, portfolioID uuid.UUID, symbol string) (*domain.ComputedPosition, error)
	// ListClosedPositions surfaces realized pnl for symbols whose live
	// quantity went to zero.
	ListClosedPositions(ctx context.Context, portfolioID uuid.UUID) ([]domain.ClosedPosition, error)
}

type positionServiceHandler struct {
	TransactionRepository repository.TransactionRepository
	QuoteRepository       repository.QuoteRepository
	QuoteTimeout          time.Duration
}

func NewPositionService(
	transactionRepository repository.TransactionRepository,
	quoteRepository repository.QuoteRepository,
) PositionService {
	return positionServiceHandler{
		TransactionRepository: transactionRepository,
		QuoteRepository:       quoteRepository,
		QuoteTimeout:          5 * time.Second,
	}
}

func (h positionServiceHandler) ComputePositions(ctx context.Context, portfolioID uuid.UUID) ([]domain.ComputedPosition, []*domain.LedgerIntegrityError, error) {
	transactions, err := h.TransactionRepository.List(repository.TransactionListFilter{
		PortfolioID: &portfolioID,
	})
	if err != nil {
		return nil, nil, err
	}

	bySymbol := groupBySymbol(transactions)
	symbols := sortedSymbols(bySymbol)

	positions := []domain.ComputedPosition{}
	integrityErrors := []*domain.LedgerIntegrityError{}
	for _, symbol := range symbols {
		txns := bySymbol[symbol]
		replayResult, err := calculator.Replay(txns)
		if err != nil {
			if lie, ok := domain.AsLedgerIntegrityError(err); ok {
				integrityErrors = append(integrityErrors, lie)
				continue
			}
			return nil, nil, err
		}
		if replayResult.Closed() {
			continue
		}
		positions = append(positions, h.project(ctx, symbol, txns[0].AssetType, replayResult))
	}

	return positions, integrityErrors, nil
}

func (h positionServiceHandler) ComputePosition(ctx context.Context, portfolioID uuid.UUID, symbol string) (*domain.ComputedPosition, error) {
	transactions, err := h.TransactionRepository.List(repository.TransactionListFilter{
		PortfolioID: &portfolioID,
		Symbol:      &symbol,
	})
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, nil
	}

	replayResult, err := calculator.Replay(transactions)
	if err != nil {
		return nil, err
	}
	if replayResult.Closed() {
		return nil, nil
	}

	position := h.project(ctx, symbol, transactions[0].AssetType, replayResult)
	return &position, nil
}

func (h positionServiceHandler) ListClosedPositions(ctx context.Context, portfolioID uuid.UUID) ([]domain.ClosedPosition, error) {
	transactions, err := h.TransactionRepository.List(repository.TransactionListFilter{
		PortfolioID: &portfolioID,
	})
	if err != nil {
		return nil, err
	}

	bySymbol := groupBySymbol(transactions)
	symbols := sortedSymbols(bySymbol)

	closed := []domain.ClosedPosition{}
	for _, symbol := range symbols {
		txns := bySymbol[symbol]
		replayResult, err := calculator.Replay(txns)
		if err != nil {
			// broken symbols are reported by ComputePositions; the closed
			// view just skips them
			if _, ok := domain.AsLedgerIntegrityError(err); ok {
				continue
			}
			return nil, err
		}
		if !replayResult.Closed() {
			continue
		}
		closed = append(closed, domain.ClosedPosition{
			Symbol:            symbol,
			AssetType:         txns[0].AssetType,
			RealizedPnl:       replayResult.RealizedPnl,
			TransactionCount:  replayResult.TransactionCount,
			LastTransactionAt: *replayResult.LastTransactionAt,
		})
	}

	return closed, nil
}

// project attaches market-dependent fields to a replay result. If the oracle
// has no answer within the timeout, those fields stay nil - nil means
// unknown, which is different from zero pnl.
func (h positionServiceHandler) project(ctx context.Context, symbol string, assetType model.AssetType, replayResult *domain.ReplayResult) domain.ComputedPosition {
	log := logger.FromContext(ctx)

	position := domain.ComputedPosition{
		Symbol:             symbol,
		AssetType:          assetType,
		Quantity:           replayResult.Quantity,
		AvgCost:            replayResult.AvgCost,
		RealizedPnl:        replayResult.RealizedPnl,
		TransactionCount:   replayResult.TransactionCount,
		FirstAcquisitionAt: *replayResult.FirstAcquisitionAt,
		LastTransactionAt:  *replayResult.LastTransactionAt,
	}

	quoteCtx, cancel := context.WithTimeout(ctx, h.QuoteTimeout)
	defer cancel()

	quote, err := h.QuoteRepository.GetLatestQuote(quoteCtx, symbol, assetType)
	if err != nil {
		log.Warnf("no price for %s: %s", symbol, err.Error())
		return position
	}

	marketValue := replayResult.Quantity.Mul(quote.Price)
	unrealizedPnl := replayResult.Quantity.Mul(quote.Price.Sub(replayResult.AvgCost))

	position.LastPrice = &quote.Price
	position.MarketValue = &marketValue
	position.UnrealizedPnl = &unrealizedPnl

	costBasis := replayResult.Quantity.Mul(replayResult.AvgCost)
	if costBasis.IsPositive() {
		percent := unrealizedPnl.Div(costBasis).Mul(decimal.NewFromInt(100))
		position.UnrealizedPnlPercent = &percent
	}

	return position
}

func groupBySymbol(transactions []model.Transaction) map[string][]model.Transaction {
	bySymbol := map[string][]model.Transaction{}
	for _, txn := range transactions {
		bySymbol[txn.Symbol] = append(bySymbol[txn.Symbol], txn)
	}
	return bySymbol
}

func sortedSymbols(bySymbol map[string][]model.Transaction) []string {
	symbols := []string{}
	for symbol := range bySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
