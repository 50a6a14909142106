package api

import (
	"time"

	"trackfolio/internal/calculator"
	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/domain"
	"trackfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type addTransactionRequest struct {
	Symbol     string  `json:"symbol"`
	AssetType  string  `json:"assetType"`
	Side       string  `json:"side"`
	Quantity   string  `json:"quantity"`
	Price      *string `json:"price"`
	OccurredAt string  `json:"occurredAt"`
}

func (h ApiHandler) addTransaction(c *gin.Context) {
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	var requestBody addTransactionRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	transaction, err := transactionFromRequest(portfolioID, requestBody)
	if err != nil {
		if lie, ok := domain.AsLedgerIntegrityError(err); ok {
			c.AbortWithStatusJSON(422, gin.H{"error": lie.Error(), "violation": lie})
			return
		}
		returnErrorJsonCode(err, c, 400)
		return
	}

	tx, err := h.Db.Begin()
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	defer tx.Rollback()

	inserted, err := h.TransactionRepository.Add(tx, *transaction)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	err = tx.Commit()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, inserted)
}

func transactionFromRequest(portfolioID uuid.UUID, requestBody addTransactionRequest) (*model.Transaction, error) {
	quantity, err := decimal.NewFromString(requestBody.Quantity)
	if err != nil {
		return nil, err
	}

	assetType, err := service.ParseAssetType(requestBody.AssetType)
	if err != nil {
		return nil, err
	}

	var price *decimal.Decimal
	if requestBody.Price != nil {
		parsed, err := decimal.NewFromString(*requestBody.Price)
		if err != nil {
			return nil, err
		}
		price = &parsed
	}

	occurredAt, err := time.Parse(time.RFC3339, requestBody.OccurredAt)
	if err != nil {
		return nil, err
	}

	transaction := model.Transaction{
		TransactionID: uuid.New(),
		PortfolioID:   portfolioID,
		Symbol:        requestBody.Symbol,
		AssetType:     assetType,
		Side:          model.TransactionSide(requestBody.Side),
		Quantity:      quantity,
		Price:         price,
		OccurredAt:    occurredAt,
	}

	if err := calculator.ValidateTransaction(transaction); err != nil {
		return nil, err
	}

	return &transaction, nil
}
