package api

import (
	"trackfolio/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type getPositionsResponse struct {
	Positions []domain.ComputedPosition      `json:"positions"`
	Errors    []*domain.LedgerIntegrityError `json:"errors,omitempty"`
}

func (h ApiHandler) getPositions(c *gin.Context) {
	ctx := c.Request.Context()

	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	positions, integrityErrors, err := h.PositionService.ComputePositions(ctx, portfolioID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	// integrity errors ride alongside the good symbols - a broken AAPL row
	// shouldn't hide the rest of the portfolio
	c.JSON(200, getPositionsResponse{
		Positions: positions,
		Errors:    integrityErrors,
	})
}

func (h ApiHandler) getPosition(c *gin.Context) {
	ctx := c.Request.Context()

	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	symbol := c.Param("symbol")

	position, err := h.PositionService.ComputePosition(ctx, portfolioID, symbol)
	if err != nil {
		if lie, ok := domain.AsLedgerIntegrityError(err); ok {
			c.AbortWithStatusJSON(422, gin.H{"error": lie.Error(), "violation": lie})
			return
		}
		returnErrorJson(err, c)
		return
	}
	if position == nil {
		c.AbortWithStatusJSON(404, gin.H{"error": "no live position for " + symbol})
		return
	}

	c.JSON(200, position)
}

func (h ApiHandler) getClosedPositions(c *gin.Context) {
	ctx := c.Request.Context()

	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	closed, err := h.PositionService.ListClosedPositions(ctx, portfolioID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{"closedPositions": closed})
}
