package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h ApiHandler) getPortfolioSummary(c *gin.Context) {
	ctx := c.Request.Context()

	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	summary, err := h.SummaryService.Summarize(ctx, portfolioID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, summary)
}
