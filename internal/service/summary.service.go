package service

import (
	"context"

	"trackfolio/internal/domain"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type SummaryService interface {
	Summarize(ctx context.Context, portfolioID uuid.UUID) (*domain.PortfolioSummary, error)
}

type summaryServiceHandler struct {
	PositionService PositionService
}

func NewSummaryService(positionService PositionService) SummaryService {
	return summaryServiceHandler{
		PositionService: positionService,
	}
}

func (h summaryServiceHandler) Summarize(ctx context.Context, portfolioID uuid.UUID) (*domain.PortfolioSummary, error) {
	positions, integrityErrors, err := h.PositionService.ComputePositions(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	summary := buildSummary(positions)
	summary.Errors = integrityErrors
	return summary, nil
}

func buildSummary(positions []domain.ComputedPosition) *domain.PortfolioSummary {
	totalValue := decimal.Zero
	percents := []float64{}
	var topMover *domain.TopMover

	for _, position := range positions {
		// a position with no known market value is excluded from the total,
		// not counted as zero
		if position.MarketValue != nil {
			totalValue = totalValue.Add(*position.MarketValue)
		}
		if position.UnrealizedPnlPercent == nil {
			continue
		}
		percents = append(percents, position.UnrealizedPnlPercent.InexactFloat64())

		candidate := domain.TopMover{
			Symbol:               position.Symbol,
			UnrealizedPnl:        *position.UnrealizedPnl,
			UnrealizedPnlPercent: *position.UnrealizedPnlPercent,
		}
		if topMover == nil || beatsTopMover(candidate, *topMover) {
			topMover = &candidate
		}
	}

	summary := &domain.PortfolioSummary{
		TotalValue: totalValue,
		TopMover:   topMover,
	}

	if len(percents) > 0 {
		mean, err := stats.Mean(percents)
		if err == nil {
			meanDecimal := decimal.NewFromFloat(mean)
			summary.MeanUnrealizedPnlPercent = &meanDecimal
		}
	}

	return summary
}

// largest absolute percent move wins; ties go to the larger absolute currency
// move, then lexically smaller symbol, so the pick is deterministic
func beatsTopMover(candidate, current domain.TopMover) bool {
	candidatePercent := candidate.UnrealizedPnlPercent.Abs()
	currentPercent := current.UnrealizedPnlPercent.Abs()
	if !candidatePercent.Equal(currentPercent) {
		return candidatePercent.GreaterThan(currentPercent)
	}

	candidatePnl := candidate.UnrealizedPnl.Abs()
	currentPnl := current.UnrealizedPnl.Abs()
	if !candidatePnl.Equal(currentPnl) {
		return candidatePnl.GreaterThan(currentPnl)
	}

	return candidate.Symbol < current.Symbol
}
