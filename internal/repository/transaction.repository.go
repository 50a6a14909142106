package repository

import (
	"database/sql"
	"fmt"
	"time"

	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
)

type TransactionListFilter struct {
	PortfolioID *uuid.UUID
	Symbol      *string
}

type TransactionRepository interface {
	Add(tx *sql.Tx, t model.Transaction) (*model.Transaction, error)
	AddMany(tx *sql.Tx, ts []*model.Transaction) ([]model.Transaction, error)
	List(filter TransactionListFilter) ([]model.Transaction, error)
}

type transactionRepositoryHandler struct {
	Db *sql.DB
}

func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return transactionRepositoryHandler{Db: db}
}

// the sequence column is filled by the db (nextval on insert), which is what
// gives same-timestamp transactions a stable replay order
var transactionInsertColumns = postgres.ColumnList{
	table.Transaction.PortfolioID,
	table.Transaction.Symbol,
	table.Transaction.AssetType,
	table.Transaction.Side,
	table.Transaction.Quantity,
	table.Transaction.Price,
	table.Transaction.OccurredAt,
	table.Transaction.CreatedAt,
	table.Transaction.ModifiedAt,
}

func (h transactionRepositoryHandler) Add(tx *sql.Tx, t model.Transaction) (*model.Transaction, error) {
	t.CreatedAt = time.Now().UTC()
	t.ModifiedAt = time.Now().UTC()

	query := table.Transaction.
		INSERT(transactionInsertColumns).
		MODEL(t).
		RETURNING(table.Transaction.AllColumns)

	out := model.Transaction{}
	err := query.Query(tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return &out, nil
}

func (h transactionRepositoryHandler) AddMany(tx *sql.Tx, ts []*model.Transaction) ([]model.Transaction, error) {
	if len(ts) == 0 {
		return []model.Transaction{}, nil
	}

	for _, t := range ts {
		t.CreatedAt = time.Now().UTC()
		t.ModifiedAt = time.Now().UTC()
	}

	query := table.Transaction.
		INSERT(transactionInsertColumns).
		MODELS(ts).
		RETURNING(table.Transaction.AllColumns)

	out := []model.Transaction{}
	err := query.Query(tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction models: %w", err)
	}

	return out, nil
}

func (h transactionRepositoryHandler) List(filter TransactionListFilter) ([]model.Transaction, error) {
	query := table.Transaction.SELECT(table.Transaction.AllColumns)

	expressions := []postgres.BoolExpression{}
	if filter.PortfolioID != nil {
		expressions = append(expressions, table.Transaction.PortfolioID.EQ(
			postgres.UUID(*filter.PortfolioID),
		))
	}
	if filter.Symbol != nil {
		expressions = append(expressions, table.Transaction.Symbol.EQ(
			postgres.String(*filter.Symbol),
		))
	}

	if len(expressions) > 0 {
		query = query.WHERE(postgres.AND(expressions...))
	}

	query = query.ORDER_BY(
		table.Transaction.OccurredAt.ASC(),
		table.Transaction.Sequence.ASC(),
	)

	out := []model.Transaction{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return out, nil
}
