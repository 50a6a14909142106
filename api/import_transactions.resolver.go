package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h ApiHandler) importTransactions(c *gin.Context) {
	ctx := c.Request.Context()

	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	defer file.Close()

	inserted, err := h.ImportService.ImportCSV(ctx, portfolioID, file)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	c.JSON(200, gin.H{"imported": len(inserted)})
}
