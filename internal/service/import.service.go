package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"trackfolio/internal/calculator"
	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/repository"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ImportService interface {
	// ImportCSV ingests a csv of transactions into the portfolio's ledger.
	// All-or-nothing: one bad row fails the whole file.
	ImportCSV(ctx context.Context, portfolioID uuid.UUID, reader io.Reader) ([]model.Transaction, error)
}

type importServiceHandler struct {
	Db                    *sql.DB
	TransactionRepository repository.TransactionRepository
}

func NewImportService(db *sql.DB, transactionRepository repository.TransactionRepository) ImportService {
	return importServiceHandler{
		Db:                    db,
		TransactionRepository: transactionRepository,
	}
}

type transactionCsvRow struct {
	Symbol     string `csv:"symbol"`
	AssetType  string `csv:"assetType"`
	Side       string `csv:"side"`
	Quantity   string `csv:"quantity"`
	Price      string `csv:"price"`
	OccurredAt string `csv:"occurredAt"`
}

func (h importServiceHandler) ImportCSV(ctx context.Context, portfolioID uuid.UUID, reader io.Reader) ([]model.Transaction, error) {
	transactions, err := ParseTransactionsCSV(portfolioID, reader)
	if err != nil {
		return nil, err
	}

	tx, err := h.Db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	inserted, err := h.TransactionRepository.AddMany(tx, transactions)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return inserted, nil
}

// ParseTransactionsCSV turns csv rows into ledger transactions, rejecting the
// file on the first malformed row. Sequence is left unset - the db assigns it
// on insert.
func ParseTransactionsCSV(portfolioID uuid.UUID, reader io.Reader) ([]*model.Transaction, error) {
	rows := []*transactionCsvRow{}
	err := gocsv.Unmarshal(reader, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv contains no transactions")
	}

	transactions := []*model.Transaction{}
	for i, row := range rows {
		transaction, err := transactionFromCsvRow(portfolioID, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		transactions = append(transactions, transaction)
	}

	return transactions, nil
}

func transactionFromCsvRow(portfolioID uuid.UUID, row *transactionCsvRow) (*model.Transaction, error) {
	assetType, err := ParseAssetType(row.AssetType)
	if err != nil {
		return nil, err
	}

	quantity, err := decimal.NewFromString(row.Quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", row.Quantity, err)
	}

	var price *decimal.Decimal
	if row.Price != "" {
		parsed, err := decimal.NewFromString(row.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", row.Price, err)
		}
		price = &parsed
	}

	occurredAt, err := time.Parse(time.RFC3339, row.OccurredAt)
	if err != nil {
		return nil, fmt.Errorf("invalid occurredAt %q: %w", row.OccurredAt, err)
	}

	transaction := &model.Transaction{
		TransactionID: uuid.New(),
		PortfolioID:   portfolioID,
		Symbol:        row.Symbol,
		AssetType:     assetType,
		Side:          model.TransactionSide(row.Side),
		Quantity:      quantity,
		Price:         price,
		OccurredAt:    occurredAt,
	}

	err = calculator.ValidateTransaction(*transaction)
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

func ParseAssetType(in string) (model.AssetType, error) {
	switch model.AssetType(in) {
	case model.AssetType_Equity,
		model.AssetType_Etf,
		model.AssetType_Crypto,
		model.AssetType_Fx,
		model.AssetType_Commodity:
		return model.AssetType(in), nil
	}
	return "", fmt.Errorf("unrecognized asset type %q", in)
}
